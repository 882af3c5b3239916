// internal/handlers/user.go
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Gauhar-1/Ludo-game/internal/auth"
	"github.com/Gauhar-1/Ludo-game/internal/database"
	"github.com/Gauhar-1/Ludo-game/internal/models"
)

// EnsureEphemeralUser resolves the caller's identity from the auth_token
// cookie, minting a fresh ephemeral guest when the cookie is missing or
// invalid. The guest's token is set on the response so the identity survives
// refreshes and reconnects.
func EnsureEphemeralUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, error) {
	if cookie, err := r.Cookie("auth_token"); err == nil {
		if idStr, err := auth.AuthenticateJWT(cookie.Value); err == nil {
			if id, err := uuid.Parse(idStr); err == nil {
				return id, nil
			}
		}
	}

	id := uuid.New()
	if database.DB != nil {
		guest := &models.User{
			ID:          id,
			Email:       fmt.Sprintf("guest-%s@guest.local", id.String()[:8]),
			Password:    uuid.NewString(),
			Username:    fmt.Sprintf("guest_%s", id.String()[:8]),
			IsEphemeral: true,
		}
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()
		if err := database.CreateUser(ctx, guest); err != nil {
			return uuid.Nil, fmt.Errorf("create guest user: %w", err)
		}
	}

	token, err := auth.CreateJWT(id.String())
	if err != nil {
		return uuid.Nil, fmt.Errorf("create guest token: %w", err)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id, nil
}

// CreateUserHandler registers a persistent account.
func CreateUserHandler(logger *logrus.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
			Username string `json:"username"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}
		if req.Email == "" || req.Password == "" {
			http.Error(w, "email and password are required", http.StatusBadRequest)
			return
		}

		user := &models.User{
			ID:       uuid.New(),
			Email:    req.Email,
			Password: req.Password,
			Username: req.Username,
		}
		if err := database.CreateUser(r.Context(), user); err != nil {
			logger.Warnf("create user failed: %v", err)
			http.Error(w, "could not create user", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]string{"id": user.ID.String()})
	}
}

// LoginHandler checks credentials and sets the auth_token cookie.
func LoginHandler(logger *logrus.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}

		token, err := database.AuthenticateUser(r.Context(), req.Email, req.Password)
		if err != nil {
			logger.Infof("login failed for %s: %v", req.Email, err)
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     "auth_token",
			Value:    token,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"token": token})
	}
}
