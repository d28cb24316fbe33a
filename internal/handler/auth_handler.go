package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"teledetect-platform/internal/middleware"
	"teledetect-platform/internal/model"
	"teledetect-platform/internal/service"
	"teledetect-platform/pkg/apierror"
)

type AuthHandler struct {
	service *service.AuthService
}

func NewAuthHandler(service *service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.Validation("invalid JSON body"))
		return
	}

	if _, err := h.service.Register(r.Context(), payload); err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, true, "User registered successfully")
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.Validation("invalid JSON body"))
		return
	}

	tokens, err := h.service.Login(r.Context(), payload.Username, payload.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tokens)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	tokenString, ok := middleware.BearerToken(r)
	if !ok {
		writeError(w, apierror.Unauthorized("Missing or invalid authorization header"))
		return
	}

	if err := h.service.Logout(r.Context(), tokenString); err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, true, "Logged out successfully")
}

// Verify re-checks the presented token against the revocation store and
// returns the backing identity record. Backends call this before serving
// protected requests.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	tokenString, ok := middleware.BearerToken(r)
	if !ok {
		writeError(w, apierror.Unauthorized("Missing or invalid authorization header"))
		return
	}

	user, err := h.service.Verify(r.Context(), tokenString)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// Me is Verify under the name clients use for their own profile.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	h.Verify(w, r)
}

func (h *AuthHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	size, _ := strconv.Atoi(r.URL.Query().Get("size"))

	list, err := h.service.ListUsers(r.Context(), page, size)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, list)
}

func (h *AuthHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	id := chi.URLParam(r, "user_id")
	if id == "" {
		writeError(w, apierror.Validation("user_id is required"))
		return
	}

	var payload model.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.Validation("invalid JSON body"))
		return
	}

	user, err := h.service.UpdateUser(r.Context(), id, payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (h *AuthHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "user_id")
	if id == "" {
		writeError(w, apierror.Validation("user_id is required"))
		return
	}

	if err := h.service.DeleteUser(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, true, "User deleted successfully")
}
