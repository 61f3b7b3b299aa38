package usecase_test

import (
	"context"
	"testing"
	"time"

	"app/internal/domain/model"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

type stubIssuer struct{}

func (stubIssuer) Issue(userID int64, role model.Role, now time.Time) (string, time.Time, error) {
	return "token", now.Add(15 * time.Minute), nil
}

func hashOf(t *testing.T, plain string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(h)
}

func TestAuthUsecase_Login_UnknownEmail(t *testing.T) {
	users := new(UserRepoMock)
	uc := usecase.NewAuthUsecase(users, stubIssuer{})

	users.On("FindByEmail", mock.Anything, "ghost@example.com").Return((*model.User)(nil), nil)

	_, err := uc.Login(context.Background(), usecase.LoginInput{Email: "ghost@example.com", Password: "x"})
	assertErrContains(t, err, "invalid credentials")
}

func TestAuthUsecase_Login_WrongPassword(t *testing.T) {
	users := new(UserRepoMock)
	uc := usecase.NewAuthUsecase(users, stubIssuer{})

	users.On("FindByEmail", mock.Anything, "admin@example.com").Return(&model.User{
		ID:           1,
		Email:        "admin@example.com",
		PasswordHash: hashOf(t, "correct"),
		Role:         model.RoleAdmin,
		IsActive:     true,
	}, nil)

	_, err := uc.Login(context.Background(), usecase.LoginInput{Email: "admin@example.com", Password: "wrong"})
	assertErrContains(t, err, "invalid credentials")
}

func TestAuthUsecase_Login_InactiveUser(t *testing.T) {
	users := new(UserRepoMock)
	uc := usecase.NewAuthUsecase(users, stubIssuer{})

	users.On("FindByEmail", mock.Anything, "old@example.com").Return(&model.User{
		ID:           2,
		Email:        "old@example.com",
		PasswordHash: hashOf(t, "pw"),
		IsActive:     false,
	}, nil)

	_, err := uc.Login(context.Background(), usecase.LoginInput{Email: "old@example.com", Password: "pw"})
	assertErrContains(t, err, "inactive")
}

func TestAuthUsecase_Login_Success(t *testing.T) {
	users := new(UserRepoMock)
	uc := usecase.NewAuthUsecase(users, stubIssuer{})

	users.On("FindByEmail", mock.Anything, "admin@example.com").Return(&model.User{
		ID:           1,
		Email:        "admin@example.com",
		PasswordHash: hashOf(t, "correct"),
		Role:         model.RoleAdmin,
		IsActive:     true,
	}, nil)
	users.On("Update", mock.Anything, mock.Anything).Return(nil)

	out, err := uc.Login(context.Background(), usecase.LoginInput{Email: "admin@example.com", Password: "correct"})
	assert.NoError(t, err)
	assert.Equal(t, "token", out.Token)
	assert.Equal(t, "ADMIN", out.Role)

	users.AssertCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAuthUsecase_EnsureAdmin_SkipsExisting(t *testing.T) {
	users := new(UserRepoMock)
	uc := usecase.NewAuthUsecase(users, stubIssuer{})

	users.On("FindByEmail", mock.Anything, "admin@example.com").Return(&model.User{ID: 1}, nil)

	err := uc.EnsureAdmin(context.Background(), "admin@example.com", "pw")
	assert.NoError(t, err)

	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthUsecase_EnsureAdmin_CreatesAdminRole(t *testing.T) {
	users := new(UserRepoMock)
	uc := usecase.NewAuthUsecase(users, stubIssuer{})

	users.On("FindByEmail", mock.Anything, "admin@example.com").Return((*model.User)(nil), nil)

	var created *model.User
	users.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		created = args.Get(1).(*model.User)
	}).Return(nil)

	err := uc.EnsureAdmin(context.Background(), "admin@example.com", "pw")
	assert.NoError(t, err)

	if assert.NotNil(t, created) {
		assert.Equal(t, model.RoleAdmin, created.Role)
		assert.True(t, created.IsActive)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("pw")))
	}
}
