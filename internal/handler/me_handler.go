package handler

import (
	"net/http"

	"github.com/saqify/backend/pkg/auth"
)

// MeHandler は現在のユーザー情報を返すハンドラ
type MeHandler struct{}

// NewMeHandler は MeHandler を生成する
func NewMeHandler() *MeHandler {
	return &MeHandler{}
}

// Me は GET /api/me を処理する（auth.RequireAuth の内側で使う）
func (h *MeHandler) Me(w http.ResponseWriter, r *http.Request) {
	s, ok := auth.SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, userResponse{
		ID:       s.UserID,
		Email:    s.Email,
		Name:     s.Name,
		Image:    s.Image,
		Provider: s.Provider,
	})
}
