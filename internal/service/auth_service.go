package service

import (
	"context"

	"github.com/saqify/backend/internal/model"
)

// GoogleUserInfo は Google OAuth から取得するユーザー情報
type GoogleUserInfo struct {
	Sub     string
	Email   string
	Name    string
	Picture string
	// VerifiedEmail は Google がメールの所有を確認済みかどうか
	VerifiedEmail bool
}

// RegisterInput はメール＋パスワード登録の入力
type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

// AuthService は認証に関するビジネスロジックのインターフェース
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*model.User, error)
	Login(ctx context.Context, email, password string) (*model.User, error)
	GetOrCreateUserFromGoogle(ctx context.Context, info *GoogleUserInfo) (*model.User, error)
}
