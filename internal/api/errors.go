package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nikolayk812/shopping/internal/domain"
	"go.uber.org/zap"
)

type errorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Codes of the "error" field for failures outside of the domain.
const (
	codeBadRequest    = "BadRequest"
	codeInternalError = "InternalError"
)

var errorMappings = []struct {
	target error
	status int
	code   string
}{
	{domain.ErrUserNotFound, http.StatusNotFound, "UserNotFound"},
	{domain.ErrProductNotFound, http.StatusNotFound, "ProductNotFound"},
	{domain.ErrCartItemNotFound, http.StatusNotFound, "CartItemNotFound"},
	{domain.ErrOrderNotFound, http.StatusNotFound, "OrderNotFound"},
	{domain.ErrCartItemOwnership, http.StatusForbidden, "CartItemOwnership"},
	{domain.ErrOrderOwnership, http.StatusForbidden, "OrderOwnership"},
	{domain.ErrInvalidQuantity, http.StatusBadRequest, "InvalidQuantity"},
	{domain.ErrEmptyCart, http.StatusBadRequest, "EmptyCart"},
	{domain.ErrInvalidArgument, http.StatusBadRequest, "InvalidArgument"},
	{domain.ErrExchangeRateUnavailable, http.StatusBadGateway, "ExchangeRateUnavailable"},
	{domain.ErrCartItemConflict, http.StatusConflict, "CartItemConflict"},
	{domain.ErrDuplicateEmail, http.StatusConflict, "DuplicateEmail"},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, "InvalidCredentials"},
	{domain.ErrUnauthenticated, http.StatusUnauthorized, "Unauthenticated"},
}

// abortWithError writes the uniform error body for err. Domain errors expose only
// their sentinel message; anything else becomes an opaque 500 carrying a logged correlation id.
func abortWithError(c *gin.Context, logger *zap.Logger, err error) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			if m.status == http.StatusBadGateway {
				logger.Warn("upstream failure", zap.String("request_id", c.GetString(requestIDKey)), zap.Error(err))
			}
			c.AbortWithStatusJSON(m.status, errorResponse{Error: m.code, Message: m.target.Error()})
			return
		}
	}

	abortInternal(c, logger, err)
}

func abortInternal(c *gin.Context, logger *zap.Logger, err error) {
	correlationID := uuid.NewString()

	logger.Error("request failed",
		zap.String("request_id", c.GetString(requestIDKey)),
		zap.String("correlation_id", correlationID),
		zap.Error(err),
	)

	c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{
		Error:         codeInternalError,
		Message:       "internal error",
		CorrelationID: correlationID,
	})
}

func abortBadRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: codeBadRequest, Message: message})
}
