package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/movie-streaming/internal/lib/jwt"
	"github.com/magabrotheeeer/movie-streaming/internal/lib/password"
	"github.com/magabrotheeeer/movie-streaming/internal/models"
)

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) RegisterUser(ctx context.Context, user models.User) (int, error) {
	args := m.Called(ctx, user)
	return args.Int(0), args.Error(1)
}
func (m *UserRepoMock) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func newTestMaker() jwt.Maker {
	return jwt.NewJWTMaker("test_secret_key", 15*time.Minute)
}

func TestService_Register(t *testing.T) {
	repo := new(UserRepoMock)
	repo.On("RegisterUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
		if u.Email != "u@example.com" || u.Username != "user1" || u.Role != models.RoleUser {
			return false
		}
		// пароль хранится только в виде bcrypt-хеша
		return u.PasswordHash != "password123" &&
			password.CompareHash(u.PasswordHash, "password123") == nil
	})).Return(1, nil).Once()

	svc := New(repo, newTestMaker())
	id, err := svc.Register(context.Background(), "u@example.com", "user1", "password123")

	require.NoError(t, err)
	assert.Equal(t, 1, id)
	repo.AssertExpectations(t)
}

func TestService_Register_DuplicateUser(t *testing.T) {
	repo := new(UserRepoMock)
	repo.On("RegisterUser", mock.Anything, mock.Anything).
		Return(0, models.ErrUserExists).Once()

	svc := New(repo, newTestMaker())
	_, err := svc.Register(context.Background(), "u@example.com", "user1", "password123")

	assert.ErrorIs(t, err, models.ErrUserExists)
}

func TestService_Login(t *testing.T) {
	hash, err := password.GetHash("password123")
	require.NoError(t, err)
	stored := &models.User{
		ID:           7,
		Username:     "user1",
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	}

	tests := []struct {
		name       string
		username   string
		rawPass    string
		setupMocks func(r *UserRepoMock)
		wantErr    error
	}{
		{
			name:     "success",
			username: "user1",
			rawPass:  "password123",
			setupMocks: func(r *UserRepoMock) {
				r.On("GetUserByUsername", mock.Anything, "user1").Return(stored, nil).Once()
			},
		},
		{
			name:     "wrong password",
			username: "user1",
			rawPass:  "wrong_password",
			setupMocks: func(r *UserRepoMock) {
				r.On("GetUserByUsername", mock.Anything, "user1").Return(stored, nil).Once()
			},
			wantErr: models.ErrInvalidCredentials,
		},
		{
			name:     "unknown user",
			username: "ghost",
			rawPass:  "password123",
			setupMocks: func(r *UserRepoMock) {
				r.On("GetUserByUsername", mock.Anything, "ghost").
					Return(nil, models.ErrUserNotFound).Once()
			},
			wantErr: models.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			tt.setupMocks(repo)
			svc := New(repo, newTestMaker())

			token, role, err := svc.Login(context.Background(), tt.username, tt.rawPass)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, token)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, models.RoleAdmin, role)

			claims, err := svc.ValidateToken(context.Background(), token)
			require.NoError(t, err)
			assert.Equal(t, "user1", claims.Username)
			assert.Equal(t, models.RoleAdmin, claims.Role)
			assert.Equal(t, 7, claims.UserID)

			repo.AssertExpectations(t)
		})
	}
}

func TestService_ValidateToken_Invalid(t *testing.T) {
	svc := New(new(UserRepoMock), newTestMaker())

	claims, err := svc.ValidateToken(context.Background(), "invalid.token.here")
	assert.Error(t, err)
	assert.Nil(t, claims)
}
