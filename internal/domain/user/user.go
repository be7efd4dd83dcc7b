package user

import (
	"context"
	"errors"
	"time"
)

// Role はユーザーの権限を表す
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// User はアカウントエンティティを表す
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// User ドメインのエラー定義
var (
	ErrUserNotFound       = errors.New("ユーザーが見つかりません")
	ErrEmailAlreadyUsed   = errors.New("このメールアドレスは既に使用されています")
	ErrInvalidCredentials = errors.New("メールアドレスまたはパスワードが正しくありません")
	ErrNameRequired       = errors.New("名前は必須です")
	ErrEmailRequired      = errors.New("メールアドレスは必須です")
	ErrPasswordRequired   = errors.New("パスワードは必須です")
)

// Validate はユーザーの検証を行う
func (u *User) Validate() error {
	if u.Name == "" {
		return ErrNameRequired
	}
	if u.Email == "" {
		return ErrEmailRequired
	}
	if u.PasswordHash == "" {
		return ErrPasswordRequired
	}
	return nil
}

// Repository はユーザーリポジトリのインターフェース
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}
