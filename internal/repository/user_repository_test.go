package repository_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/nikolayk812/shopping/internal/domain"
	"github.com/nikolayk812/shopping/internal/port"
	"github.com/nikolayk812/shopping/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type userRepositorySuite struct {
	postgresSuite

	users    port.UserRepository
	products port.ProductRepository
}

func TestUserRepositorySuite(t *testing.T) {
	suite.Run(t, new(userRepositorySuite))
}

func (suite *userRepositorySuite) SetupSuite() {
	suite.postgresSuite.SetupSuite()

	suite.users = repository.NewUser(suite.pool)
	suite.products = repository.NewProduct(suite.pool)
}

func (suite *userRepositorySuite) TestCreateAndGet() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	user := domain.User{Email: gofakeit.Email(), PasswordHash: gofakeit.LetterN(60)}

	id, err := suite.users.Create(ctx, user)
	require.NoError(t, err)
	user.ID = id

	byID, err := suite.users.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, user, byID)

	byEmail, err := suite.users.GetByEmail(ctx, user.Email)
	require.NoError(t, err)
	assert.Equal(t, user, byEmail)

	_, err = suite.users.Create(ctx, domain.User{Email: user.Email, PasswordHash: "x"})
	require.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func (suite *userRepositorySuite) TestCreate_Invalid() {
	_, err := suite.users.Create(suite.T().Context(), domain.User{PasswordHash: "x"})
	require.EqualError(suite.T(), err, "email is empty")

	_, err = suite.users.Create(suite.T().Context(), domain.User{Email: gofakeit.Email()})
	require.EqualError(suite.T(), err, "password hash is empty")
}

func (suite *userRepositorySuite) TestGet_NotFound() {
	ctx := suite.T().Context()

	_, err := suite.users.Get(ctx, 987654)
	require.ErrorIs(suite.T(), err, domain.ErrUserNotFound)

	_, err = suite.users.GetByEmail(ctx, "nobody@example.com")
	require.ErrorIs(suite.T(), err, domain.ErrUserNotFound)
}

func (suite *userRepositorySuite) TestProducts() {
	t := suite.T()
	ctx := t.Context()

	seeded, err := suite.products.List(ctx)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(seeded), 2)

	first, err := suite.products.Get(ctx, seeded[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Chicken", first.Name)
	assert.Equal(t, "10", first.Price.Amount.String())
	assert.Equal(t, "USD", first.Price.Currency.String())

	_, err = suite.products.Get(ctx, 987654)
	require.ErrorIs(t, err, domain.ErrProductNotFound)
}
