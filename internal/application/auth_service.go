package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/novastellaa/BE-Infokus-Studio/internal/config"
	"github.com/novastellaa/BE-Infokus-Studio/internal/domain/user"
)

// AuthService はアカウント登録とログインを担当する
// コアは検証済みの {userId, role} クレームを信頼するのみで、
// トークン検証はミドルウェア側で行う
type AuthService struct {
	userRepo user.Repository
	cfg      *config.AuthConfig
}

func NewAuthService(ur user.Repository, cfg *config.AuthConfig) *AuthService {
	return &AuthService{userRepo: ur, cfg: cfg}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*user.User, error) {
	if input.Password == "" {
		return nil, user.ErrPasswordRequired
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("パスワードのハッシュ化に失敗: %w", err)
	}
	u := &user.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         user.RoleCustomer,
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login は認証に成功するとJWTを発行する
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *user.User, error) {
	u, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return "", nil, user.ErrInvalidCredentials
		}
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", nil, user.ErrInvalidCredentials
	}

	token, err := s.generateToken(u)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

func (s *AuthService) generateToken(u *user.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  u.ID,
		"role": string(u.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(s.cfg.TokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("トークンの署名に失敗: %w", err)
	}
	return signed, nil
}
