package authenticating

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/traffic-balance-api/infrastructure/repository/mocks"
	"github.com/vfg2006/traffic-balance-api/internal/config"
	"github.com/vfg2006/traffic-balance-api/internal/domain"
	"github.com/vfg2006/traffic-balance-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

func newTestService(t *testing.T) (*Service, *mocks.MockUserRepository) {
	ctrl := gomock.NewController(t)
	userRepo := mocks.NewMockUserRepository(ctrl)

	cfg := &config.Config{
		Auth: config.Auth{SecretKey: "segredo-de-teste", TokenTTL: time.Hour},
	}

	return NewService(userRepo, cfg).(*Service), userRepo
}

func hashPassword(t *testing.T, password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestLoginUser(t *testing.T) {
	activeUser := &domain.User{
		ID:           7,
		Name:         "Ana",
		Lastname:     "Souza",
		Email:        "ana@agencia.com",
		PasswordHash: hashPassword(t, "senha-forte"),
		Active:       true,
		RoleID:       2,
		AgencyID:     "agencia-1",
	}

	tests := []struct {
		name        string
		email       string
		password    string
		setupMock   func(repo *mocks.MockUserRepository)
		expectedErr error
		code        string
	}{
		{
			name:        "email e senha obrigatórios",
			email:       "",
			password:    "",
			setupMock:   func(repo *mocks.MockUserRepository) {},
			expectedErr: ErrMissingRequiredData,
			code:        apiErrors.ErrMissingRequiredData,
		},
		{
			name:     "usuário não encontrado",
			email:    "ninguem@agencia.com",
			password: "x",
			setupMock: func(repo *mocks.MockUserRepository) {
				repo.EXPECT().GetUserByEmail("ninguem@agencia.com").Return(nil, nil)
			},
			expectedErr: ErrUserNotFound,
			code:        apiErrors.ErrUserNotFound,
		},
		{
			name:     "erro no banco",
			email:    "ana@agencia.com",
			password: "x",
			setupMock: func(repo *mocks.MockUserRepository) {
				repo.EXPECT().GetUserByEmail("ana@agencia.com").Return(nil, errors.New("conexão perdida"))
			},
			code: apiErrors.ErrDatabaseOperation,
		},
		{
			name:     "usuário desativado",
			email:    "ana@agencia.com",
			password: "senha-forte",
			setupMock: func(repo *mocks.MockUserRepository) {
				disabled := *activeUser
				disabled.Active = false
				repo.EXPECT().GetUserByEmail("ana@agencia.com").Return(&disabled, nil)
			},
			expectedErr: ErrUserDisabled,
			code:        apiErrors.ErrUserDisabled,
		},
		{
			name:     "senha incorreta",
			email:    "ana@agencia.com",
			password: "errada",
			setupMock: func(repo *mocks.MockUserRepository) {
				repo.EXPECT().GetUserByEmail("ana@agencia.com").Return(activeUser, nil)
			},
			expectedErr: ErrInvalidCredentials,
			code:        apiErrors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo := newTestService(t)
			tt.setupMock(repo)

			token, err := service.LoginUser(tt.email, tt.password)

			require.Error(t, err)
			assert.Empty(t, token)

			var authErr *AuthError
			require.True(t, errors.As(err, &authErr))
			assert.Equal(t, tt.code, authErr.Code)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			}
		})
	}

	t.Run("login válido gera token com escopo da agência", func(t *testing.T) {
		service, repo := newTestService(t)
		repo.EXPECT().GetUserByEmail("ana@agencia.com").Return(activeUser, nil)

		token, err := service.LoginUser("  Ana@Agencia.com ", "senha-forte")
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := service.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, 7, claims.UserID)
		assert.Equal(t, 2, claims.UserRoleID)
		assert.Equal(t, "agencia-1", claims.AgencyID)
	})
}

func TestValidateToken(t *testing.T) {
	t.Run("token malformado", func(t *testing.T) {
		service, _ := newTestService(t)

		_, err := service.ValidateToken("nao-e-um-jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("token expirado", func(t *testing.T) {
		service, _ := newTestService(t)
		service.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

		token, err := service.generateJWT(&domain.User{ID: 1, AgencyID: "agencia-1"})
		require.NoError(t, err)

		_, err = service.ValidateToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("assinatura de outra chave", func(t *testing.T) {
		service, _ := newTestService(t)
		token, err := service.generateJWT(&domain.User{ID: 1})
		require.NoError(t, err)

		other, _ := newTestService(t)
		other.cfg.Auth.SecretKey = "outra-chave"

		_, err = other.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
