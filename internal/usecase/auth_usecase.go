package usecase

import (
	"context"
	"net/http"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// JWTを発行する約束
type TokenIssuer interface {
	Issue(userID int64, role model.Role, now time.Time) (token string, expiresAt time.Time, err error)
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginOutput struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
}

type AuthUsecase struct {
	userRepo repo.UserRepository
	issuer   TokenIssuer
}

func NewAuthUsecase(userRepo repo.UserRepository, issuer TokenIssuer) *AuthUsecase {
	return &AuthUsecase{userRepo: userRepo, issuer: issuer}
}

// ログイン処理を実行する
func (u *AuthUsecase) Login(ctx context.Context, in LoginInput) (LoginOutput, error) {
	if in.Email == "" || in.Password == "" {
		return LoginOutput{}, NewHTTPError(http.StatusBadRequest, "email and password are required")
	}

	//emailでユーザー取得
	user, err := u.userRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	// 存在しない場合もパスワード違いと同じ応答にする
	if user == nil {
		return LoginOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	//停止ユーザーはログイン不可
	if !user.IsActive {
		return LoginOutput{}, NewHTTPError(http.StatusForbidden, "user is inactive")
	}

	//パスワード照合
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	now := time.Now()
	token, expiresAt, err := u.issuer.Issue(user.ID, user.Role, now)
	if err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusInternalServerError, "failed to issue token")
	}

	// 最終ログインの記録は失敗してもログインは成立させる
	user.LastLoginAt = &now
	if err := u.userRepo.Update(ctx, user); err != nil {
		log.Warn().Err(err).Int64("user_id", user.ID).Msg("auth: failed to update last_login_at")
	}

	return LoginOutput{
		Token:     token,
		ExpiresAt: expiresAt,
		Email:     user.Email,
		Role:      string(user.Role),
	}, nil
}

// 起動時に管理者アカウントを用意する。すでに居れば何もしない。
func (u *AuthUsecase) EnsureAdmin(ctx context.Context, email string, password string) error {
	if email == "" || password == "" {
		return nil
	}

	existing, err := u.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &model.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
		IsActive:     true,
	}
	if err := u.userRepo.Create(ctx, admin); err != nil {
		return err
	}
	log.Info().Str("email", email).Msg("auth: admin user created")
	return nil
}
