package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nikolayk812/shopping/internal/auth"
	"github.com/nikolayk812/shopping/internal/domain"
	"github.com/nikolayk812/shopping/internal/service"
	"go.uber.org/zap"
)

type CartService interface {
	AddProduct(ctx context.Context, userID, productID int64) (domain.CartItem, error)
	ListAll(ctx context.Context, userID int64) ([]domain.CartItem, error)
	UpdateQuantity(ctx context.Context, userID, cartItemID int64, quantity int) (domain.CartItem, error)
	Delete(ctx context.Context, userID, cartItemID int64) error
}

type OrderService interface {
	Place(ctx context.Context, userID int64) (int64, error)
	Find(ctx context.Context, userID, orderID int64) (domain.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Order, error)
}

type UserService interface {
	Signup(ctx context.Context, email, password string) (int64, error)
	Login(ctx context.Context, email, password string) (service.AccessToken, error)
}

type CatalogService interface {
	List(ctx context.Context) ([]domain.Product, error)
}

type TokenParser interface {
	Parse(token string) (int64, error)
}

type Handler struct {
	carts   CartService
	orders  OrderService
	users   UserService
	catalog CatalogService
	logger  *zap.Logger
}

func NewHandler(carts CartService, orders OrderService, users UserService, catalog CatalogService, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Handler{
		carts:   carts,
		orders:  orders,
		users:   users,
		catalog: catalog,
		logger:  logger,
	}
}

type credentialsRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Signup(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, "email and password are required")
		return
	}

	id, err := h.users.Signup(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}

	c.Header("Location", fmt.Sprintf("/users/%d", id))
	c.JSON(http.StatusCreated, idView{ID: id})
}

func (h *Handler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, "email and password are required")
		return
	}

	token, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, tokenView{
		AccessToken: token.Token,
		TokenType:   auth.TokenType,
		ExpiresIn:   int64(token.ExpiresIn.Seconds()),
	})
}

func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.catalog.List(c.Request.Context())
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, toProductViews(products))
}

type addCartItemRequest struct {
	ProductID int64 `json:"productId" binding:"required,gt=0"`
}

func (h *Handler) AddCartItem(c *gin.Context) {
	var req addCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, "productId must be a positive integer")
		return
	}

	item, err := h.carts.AddProduct(c.Request.Context(), currentUserID(c), req.ProductID)
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}

	c.Header("Location", fmt.Sprintf("/cart-items/%d", item.ID))
	c.JSON(http.StatusCreated, toCartItemView(item))
}

func (h *Handler) ListCartItems(c *gin.Context) {
	items, err := h.carts.ListAll(c.Request.Context(), currentUserID(c))
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, toCartItemViews(items))
}

type updateQuantityRequest struct {
	// pointer so that an explicit 0 reaches the domain check
	Quantity *int `json:"quantity" binding:"required"`
}

func (h *Handler) UpdateCartItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req updateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, "quantity is required")
		return
	}

	item, err := h.carts.UpdateQuantity(c.Request.Context(), currentUserID(c), id, *req.Quantity)
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, toCartItemView(item))
}

func (h *Handler) DeleteCartItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.carts.Delete(c.Request.Context(), currentUserID(c), id); err != nil {
		abortWithError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) PlaceOrder(c *gin.Context) {
	id, err := h.orders.Place(c.Request.Context(), currentUserID(c))
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}

	c.Header("Location", fmt.Sprintf("/orders/%d", id))
	c.JSON(http.StatusCreated, idView{ID: id})
}

func (h *Handler) ListOrders(c *gin.Context) {
	orders, err := h.orders.ListByUser(c.Request.Context(), currentUserID(c))
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}

	views, err := toOrderViews(orders)
	if err != nil {
		abortInternal(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, views)
}

func (h *Handler) GetOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	order, err := h.orders.Find(c.Request.Context(), currentUserID(c), id)
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}

	view, err := toOrderView(order)
	if err != nil {
		abortInternal(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		abortBadRequest(c, fmt.Sprintf("id[%s] is not valid", c.Param("id")))
		return 0, false
	}

	return id, true
}
