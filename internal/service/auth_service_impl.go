package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/saqify/backend/internal/apperr"
	"github.com/saqify/backend/internal/model"
	"github.com/saqify/backend/internal/repository"
)

// PasswordHashCost is the bcrypt cost used for new accounts.
const PasswordHashCost = 10

// AuthServiceImpl は AuthService の実装
type AuthServiceImpl struct {
	userRepo repository.UserRepository
	hashCost int
}

// NewAuthService は AuthServiceImpl を生成する（DI: UserRepository を注入）
func NewAuthService(userRepo repository.UserRepository) AuthService {
	return &AuthServiceImpl{userRepo: userRepo, hashCost: PasswordHashCost}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register はメール＋パスワードでユーザーを作成する
func (s *AuthServiceImpl) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, apperr.BadInput("Email and password are required.")
	}

	_, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil {
		return nil, apperr.Conflict("Email already registered. Please sign in.")
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.Internal(err, "find user")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, apperr.BadInput("Password must be at most 72 bytes.")
	}
	if err != nil {
		return nil, apperr.Internal(err, "hash password")
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		name, _, _ = strings.Cut(email, "@")
	}
	user := &model.User{
		ID:           "local-" + uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Insert(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.Conflict("Email already registered. Please sign in.")
		}
		return nil, apperr.Internal(err, "create user")
	}
	slog.Info("new user created", "user_id", user.ID, "provider", "credentials")
	return user, nil
}

// Login はメール＋パスワードを検証する
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*model.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, apperr.BadInput("Email and password are required.")
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.Unauthorized("No account found. Please register first.")
	}
	if err != nil {
		return nil, apperr.Internal(err, "find user")
	}
	if user.PasswordHash == "" {
		// Google-only account
		return nil, apperr.Unauthorized("Incorrect password.")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.Unauthorized("Incorrect password.")
	}
	return user, nil
}

// GetOrCreateUserFromGoogle は Google ユーザー情報からユーザーを取得または作成する
func (s *AuthServiceImpl) GetOrCreateUserFromGoogle(ctx context.Context, info *GoogleUserInfo) (*model.User, error) {
	slog.Debug("get or create google user", "sub", info.Sub, "email", info.Email)

	u, err := s.userRepo.FindByGoogleID(ctx, info.Sub)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.Internal(err, "find google user")
	}

	email := normalizeEmail(info.Email)
	existing, err := s.userRepo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		// 確認済みメールのときだけ既存アカウントに紐付ける
		if !info.VerifiedEmail {
			slog.Warn("google email not verified; refusing to link", "sub", info.Sub)
			return nil, apperr.Conflict("An account with this email already exists")
		}
		return existing, nil
	case !errors.Is(err, repository.ErrNotFound):
		return nil, apperr.Internal(err, "find user by email")
	}

	name := info.Name
	if name == "" {
		name, _, _ = strings.Cut(email, "@")
	}
	newUser := &model.User{
		ID:       "google-" + info.Sub,
		Email:    email,
		Name:     name,
		Image:    info.Picture,
		GoogleID: info.Sub,
	}
	if err := s.userRepo.Insert(ctx, newUser); err != nil {
		slog.Error("create google user failed", "error", err)
		return nil, apperr.Internal(err, "create user")
	}
	slog.Info("new user created", "user_id", newUser.ID, "provider", "google")
	return newUser, nil
}
