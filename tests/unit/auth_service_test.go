package unit_test

import (
	"context"
	"testing"
	"time"

	"wanderlog/internal/config"
	"wanderlog/internal/domain"
	"wanderlog/internal/service"
	"wanderlog/tests/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 24 * time.Hour,
	}
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	input := domain.CreateUserInput{
		Email:    "traveller@example.com",
		Password: "password123",
		FullName: "Alex Traveller",
	}

	t.Run("Success", func(t *testing.T) {
		mockUsers := new(mocks.UserRepository)
		mockSessions := new(mocks.SessionRepository)
		svc := service.NewAuthService(mockUsers, mockSessions, nil, testConfig())

		mockUsers.On("ExistsByEmail", ctx, input.Email).Return(false, nil).Once()
		mockUsers.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Email == input.Email && u.FullName == input.FullName && u.PasswordHash != input.Password
		})).Return(nil).Once()
		mockSessions.On("Create", ctx, mock.Anything).Return(nil).Once()

		user, tokens, err := svc.Register(ctx, input)

		assert.NoError(t, err)
		assert.NotNil(t, user)
		assert.NotEmpty(t, tokens.AccessToken)
		assert.NotEmpty(t, tokens.RefreshToken)

		claims, err := svc.ValidateAccessToken(tokens.AccessToken)
		assert.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)

		mockUsers.AssertExpectations(t)
		mockSessions.AssertExpectations(t)
	})

	t.Run("Duplicate Email", func(t *testing.T) {
		mockUsers := new(mocks.UserRepository)
		mockSessions := new(mocks.SessionRepository)
		svc := service.NewAuthService(mockUsers, mockSessions, nil, testConfig())

		mockUsers.On("ExistsByEmail", ctx, input.Email).Return(true, nil).Once()

		user, tokens, err := svc.Register(ctx, input)

		assert.ErrorIs(t, err, service.ErrEmailExists)
		assert.Nil(t, user)
		assert.Nil(t, tokens)
		mockUsers.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &domain.User{
		ID:           uuid.New(),
		Email:        "traveller@example.com",
		PasswordHash: string(hash),
		FullName:     "Alex Traveller",
	}

	t.Run("Success", func(t *testing.T) {
		mockUsers := new(mocks.UserRepository)
		mockSessions := new(mocks.SessionRepository)
		svc := service.NewAuthService(mockUsers, mockSessions, nil, testConfig())

		mockUsers.On("GetByEmail", ctx, user.Email).Return(user, nil).Once()
		mockSessions.On("Create", ctx, mock.Anything).Return(nil).Once()

		loggedIn, tokens, err := svc.Login(ctx, domain.LoginInput{Email: user.Email, Password: "password123"})

		assert.NoError(t, err)
		assert.Equal(t, user.ID, loggedIn.ID)
		assert.NotEmpty(t, tokens.AccessToken)
	})

	t.Run("Wrong Password", func(t *testing.T) {
		mockUsers := new(mocks.UserRepository)
		mockSessions := new(mocks.SessionRepository)
		svc := service.NewAuthService(mockUsers, mockSessions, nil, testConfig())

		mockUsers.On("GetByEmail", ctx, user.Email).Return(user, nil).Once()

		_, tokens, err := svc.Login(ctx, domain.LoginInput{Email: user.Email, Password: "wrong"})

		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
		assert.Nil(t, tokens)
		mockSessions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Unknown Email", func(t *testing.T) {
		mockUsers := new(mocks.UserRepository)
		mockSessions := new(mocks.SessionRepository)
		svc := service.NewAuthService(mockUsers, mockSessions, nil, testConfig())

		mockUsers.On("GetByEmail", ctx, "nobody@example.com").Return(nil, nil).Once()

		_, tokens, err := svc.Login(ctx, domain.LoginInput{Email: "nobody@example.com", Password: "password123"})

		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
		assert.Nil(t, tokens)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctx := context.Background()

	t.Run("Invalid Token", func(t *testing.T) {
		mockUsers := new(mocks.UserRepository)
		mockSessions := new(mocks.SessionRepository)
		svc := service.NewAuthService(mockUsers, mockSessions, nil, testConfig())

		mockSessions.On("GetByTokenHash", ctx, mock.Anything).Return(nil, nil).Once()

		tokens, err := svc.RefreshToken(ctx, "bogus")

		assert.ErrorIs(t, err, service.ErrInvalidToken)
		assert.Nil(t, tokens)
	})
}
