package handler

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/saqify/backend/internal/apperr"
	"github.com/saqify/backend/internal/model"
	"github.com/saqify/backend/internal/service"
	"github.com/saqify/backend/pkg/auth"
)

const oauthStateCookieName = "oauth_state"

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// generateOAuthState は CSRF 対策用のランダム state 文字列を生成する
func generateOAuthState() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return base64.URLEncoding.EncodeToString(b)
}

// AuthHandler は認証関連の HTTP ハンドラ
type AuthHandler struct {
	authService   service.AuthService
	googleConfig  *oauth2.Config
	userInfoURL   string
	sessionSecret []byte
	frontendURL   string
	secureCookies bool
	now           func() time.Time
}

// AuthConfig は AuthHandler の設定
type AuthConfig struct {
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectPath string
	BackendURL         string
	SessionSecret      string
	FrontendURL        string
	SecureCookies      bool
}

// NewAuthHandler は AuthHandler を生成する（DI: AuthService を注入）
func NewAuthHandler(authService service.AuthService, cfg AuthConfig) *AuthHandler {
	h := &AuthHandler{
		authService:   authService,
		userInfoURL:   googleUserInfoURL,
		sessionSecret: auth.SessionSecretBytes(cfg.SessionSecret),
		frontendURL:   cfg.FrontendURL,
		secureCookies: cfg.SecureCookies,
		now:           time.Now,
	}
	// Google が未設定なら Google ログインは 404
	if cfg.GoogleClientID != "" && cfg.GoogleClientSecret != "" {
		h.googleConfig = &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.BackendURL + cfg.GoogleRedirectPath,
			Scopes:       []string{"profile", "email"},
			Endpoint:     google.Endpoint,
		}
	}
	return h
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// userResponse は サインイン済みユーザーの公開情報
type userResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Image    string `json:"image,omitempty"`
	Provider string `json:"provider"`
}

type authResponse struct {
	User userResponse `json:"user"`
}

func providerOf(u *model.User) string {
	if u.GoogleID != "" && u.PasswordHash == "" {
		return "google"
	}
	return "credentials"
}

// Register は POST /api/auth/register を処理する
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	user, err := h.authService.Register(r.Context(), service.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		h.writeAuthError(w, r, err)
		return
	}
	h.signIn(w, r, user)
}

// Login は POST /api/auth/login を処理する
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	user, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeAuthError(w, r, err)
		return
	}
	h.signIn(w, r, user)
}

// Logout は POST /api/auth/logout を処理する
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, auth.ClearSessionCookie(h.secureCookies))
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *AuthHandler) signIn(w http.ResponseWriter, r *http.Request, user *model.User) {
	resp := userResponse{
		ID:       user.ID,
		Email:    user.Email,
		Name:     user.Name,
		Image:    user.Image,
		Provider: providerOf(user),
	}
	token, err := h.sessionToken(resp)
	if err != nil {
		slog.Error("failed to create session", "user_id", user.ID, "error", err)
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}
	http.SetCookie(w, auth.SessionCookie(token, h.secureCookies))
	writeJSON(w, http.StatusOK, authResponse{User: resp})
}

func (h *AuthHandler) sessionToken(u userResponse) (string, error) {
	return auth.CreateSessionToken(auth.Session{
		UserID:   u.ID,
		Email:    u.Email,
		Name:     u.Name,
		Image:    u.Image,
		Provider: u.Provider,
	}, h.sessionSecret, h.now())
}

func (h *AuthHandler) writeAuthError(w http.ResponseWriter, r *http.Request, err error) {
	if status, msg, ok := apperr.Public(err); ok {
		writeError(w, status, msg)
		return
	}
	slog.Error("auth request failed", "path", r.URL.Path, "error", err)
	writeError(w, http.StatusInternalServerError, msgInternal)
}

// setStateCookie は state を HttpOnly クッキーに保存する
func (h *AuthHandler) setStateCookie(w http.ResponseWriter, state string) {
	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookieName,
		Value:    state,
		Path:     "/",
		MaxAge:   600, // 10 minutes
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.secureCookies,
	})
}

// verifyOAuthState は state クッキーとクエリパラメータを照合する
func verifyOAuthState(r *http.Request) bool {
	cookie, err := r.Cookie(oauthStateCookieName)
	if err != nil || cookie.Value == "" {
		return false
	}
	return cookie.Value == r.URL.Query().Get("state")
}

// clearStateCookie は state クッキーを削除する
func clearStateCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Expires:  time.Unix(0, 0),
	})
}

// googleUserInfo は Google userinfo API のレスポンス
type googleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// GoogleLoginURL は Google OAuth の認証 URL を返す（GET /api/auth/google/login）
func (h *AuthHandler) GoogleLoginURL(w http.ResponseWriter, r *http.Request) {
	if h.googleConfig == nil {
		writeError(w, http.StatusNotFound, "google_not_configured")
		return
	}
	state := generateOAuthState()
	h.setStateCookie(w, state)
	writeJSON(w, http.StatusOK, map[string]string{"url": h.googleConfig.AuthCodeURL(state)})
}

// GoogleCallback は OAuth コールバックを処理する（GET /api/auth/google/callback）
func (h *AuthHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	if h.googleConfig == nil {
		writeError(w, http.StatusNotFound, "google_not_configured")
		return
	}
	if !verifyOAuthState(r) {
		clearStateCookie(w)
		http.Redirect(w, r, h.frontendURL+"/signin?error=invalid_state", http.StatusFound)
		return
	}
	clearStateCookie(w)

	code := r.URL.Query().Get("code")
	if code == "" {
		http.Redirect(w, r, h.frontendURL+"/signin?error=no_code", http.StatusFound)
		return
	}

	token, err := h.googleConfig.Exchange(r.Context(), code)
	if err != nil {
		slog.Warn("google code exchange failed", "error", err)
		http.Redirect(w, r, h.frontendURL+"/signin?error=exchange_failed", http.StatusFound)
		return
	}

	client := h.googleConfig.Client(r.Context(), token)
	resp, err := client.Get(h.userInfoURL)
	if err != nil {
		http.Redirect(w, r, h.frontendURL+"/signin?error=userinfo_failed", http.StatusFound)
		return
	}
	defer resp.Body.Close()

	var info googleUserInfo
	if resp.StatusCode != http.StatusOK || json.NewDecoder(resp.Body).Decode(&info) != nil || info.ID == "" {
		http.Redirect(w, r, h.frontendURL+"/signin?error=decode_failed", http.StatusFound)
		return
	}

	user, err := h.authService.GetOrCreateUserFromGoogle(r.Context(), &service.GoogleUserInfo{
		Sub:           info.ID,
		Email:         info.Email,
		VerifiedEmail: info.VerifiedEmail,
		Name:          info.Name,
		Picture:       info.Picture,
	})
	if err != nil {
		code := "create_user_failed"
		if status, _, ok := apperr.Public(err); ok && status == http.StatusConflict {
			code = "account_exists"
		}
		http.Redirect(w, r, h.frontendURL+"/signin?error="+code, http.StatusFound)
		return
	}

	sessionToken, err := h.sessionToken(userResponse{
		ID:       user.ID,
		Email:    user.Email,
		Name:     user.Name,
		Image:    user.Image,
		Provider: "google",
	})
	if err != nil {
		http.Redirect(w, r, h.frontendURL+"/signin?error=session_failed", http.StatusFound)
		return
	}
	http.SetCookie(w, auth.SessionCookie(sessionToken, h.secureCookies))
	http.Redirect(w, r, h.frontendURL+"/profile", http.StatusFound)
}
