package auth

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// SessionTTL is the lifetime of a session cookie and its token.
const SessionTTL = 30 * 24 * time.Hour

const sessionCookieName = "saqify_session"
const minSecretLen = 32

// Session は JWT に載せるサインイン情報
type Session struct {
	UserID   string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Image    string `json:"image,omitempty"`
	Provider string `json:"provider"`
	jwt.RegisteredClaims
}

// CreateSessionToken は HS256 で署名したセッショントークンを生成する
func CreateSessionToken(s Session, secret []byte, now time.Time) (string, error) {
	s.Subject = s.UserID
	s.IssuedAt = jwt.NewNumericDate(now)
	s.ExpiresAt = jwt.NewNumericDate(now.Add(SessionTTL))
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, s)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign session: %w", err)
	}
	return signed, nil
}

// VerifySessionToken はトークンを検証しセッションを返す
func VerifySessionToken(token string, secret []byte) (*Session, error) {
	var s Session
	parsed, err := jwt.ParseWithClaims(token, &s, func(t *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !parsed.Valid || s.UserID == "" {
		return nil, errors.New("invalid session")
	}
	return &s, nil
}

// SessionCookieName はセッションクッキー名
func SessionCookieName() string {
	return sessionCookieName
}

// SessionCookie は token を載せたクッキーを返す。secure は本番で true
func SessionCookie(token string, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(SessionTTL / time.Second),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// ClearSessionCookie はセッションクッキーを削除するクッキーを返す
func ClearSessionCookie(secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// SessionSecretBytes は文字列からセッション署名用のバイト列を生成する（最低32バイト）
func SessionSecretBytes(s string) []byte {
	b := []byte(s)
	if len(b) < minSecretLen {
		out := make([]byte, minSecretLen)
		copy(out, b)
		return out
	}
	return b
}
