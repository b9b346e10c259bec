package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/saqify/backend/internal/apperr"
	"github.com/saqify/backend/internal/model"
	"github.com/saqify/backend/internal/service"
	"github.com/saqify/backend/pkg/auth"
)

// WishlistHandler serves the signed-in user's wishlist.
type WishlistHandler struct {
	wishlistService service.WishlistService
}

// NewWishlistHandler creates a WishlistHandler with the given service.
func NewWishlistHandler(wishlistService service.WishlistService) *WishlistHandler {
	return &WishlistHandler{wishlistService: wishlistService}
}

type wishlistResponse struct {
	Items []model.WishlistItem `json:"items"`
}

type toggleResponse struct {
	Wishlisted bool                 `json:"wishlisted"`
	Items      []model.WishlistItem `json:"items"`
}

type toggleRequest struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Image    string `json:"image"`
}

// List handles GET /api/me/wishlist.
func (h *WishlistHandler) List(w http.ResponseWriter, r *http.Request) {
	s, ok := auth.SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	items, err := h.wishlistService.List(r.Context(), s.Email)
	if err != nil {
		slog.Error("failed to load wishlist", "user_id", s.UserID, "error", err)
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}
	if items == nil {
		items = []model.WishlistItem{}
	}
	writeJSON(w, http.StatusOK, wishlistResponse{Items: items})
}

// Toggle handles POST /api/me/wishlist/toggle.
func (h *WishlistHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	s, ok := auth.SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req toggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	on, items, err := h.wishlistService.Toggle(r.Context(), s.Email, model.WishlistItem{
		ID:       req.ID,
		Title:    req.Title,
		Category: req.Category,
		Image:    req.Image,
	})
	if err != nil {
		if status, msg, ok := apperr.Public(err); ok {
			writeError(w, status, msg)
			return
		}
		slog.Error("failed to toggle wishlist", "user_id", s.UserID, "error", err)
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}
	if items == nil {
		items = []model.WishlistItem{}
	}
	writeJSON(w, http.StatusOK, toggleResponse{Wishlisted: on, Items: items})
}
