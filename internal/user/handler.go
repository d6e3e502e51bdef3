package user

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/IT-BAER/finx-sub002/internal/auth"
)

type Handler struct {
	service    Service
	jwtManager auth.JWTManagerInterface
}

func NewHandler(service Service, jwtManager auth.JWTManagerInterface) *Handler {
	return &Handler{service: service, jwtManager: jwtManager}
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]interface{}{
		"status":  "error",
		"message": message,
		"code":    status,
	})
}

func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	newUser, err := h.service.Register(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidEmail), errors.Is(err, ErrWeakPassword):
			respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrEmailAlreadyExists):
			respondError(w, http.StatusConflict, err.Error())
		default:
			slog.Error("registration failed", "error", err)
			respondError(w, http.StatusInternalServerError, "Failed to register user")
		}
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status": "success",
		"data":   newUser,
	})
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	authenticated, err := h.service.Authenticate(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			respondError(w, http.StatusUnauthorized, err.Error())
			return
		}
		slog.Error("login failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	token, err := h.jwtManager.GenerateAccessJWT(authenticated.ID)
	if err != nil {
		slog.Error("token generation failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data": map[string]interface{}{
			"token": token,
			"user":  authenticated,
		},
	})
}

func (h *Handler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	profile, err := h.service.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		slog.Error("profile lookup failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to load profile")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   profile,
	})
}
