package handlers

import (
	"errors"
	"net/http"
	"strings"
	"unicode"

	"github.com/tarcanfarm/farm-backend/internal/auth"
	"github.com/tarcanfarm/farm-backend/internal/middleware"
	"github.com/tarcanfarm/farm-backend/internal/models"
	"github.com/tarcanfarm/farm-backend/internal/session"
)

const minPasswordLength = 6

type registerRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type loginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// validPhone accepts digit strings of plausible length, with an optional
// leading +.
func validPhone(phone string) bool {
	if strings.HasPrefix(phone, "+") {
		phone = phone[1:]
	}
	if len(phone) < 10 || len(phone) > 15 {
		return false
	}
	for _, r := range phone {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// setSessionCookie attaches the session cookie carrying token.
func (a *API) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(session.Duration.Seconds()),
		HttpOnly: true,
		Secure:   a.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (a *API) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   a.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// Register creates an account and logs the new user straight in. The
// session token travels only on the cookie, never in the body.
func (a *API) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Phone = strings.TrimSpace(req.Phone)

	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "Name is required")
		return
	}
	if !validPhone(req.Phone) {
		respondError(w, http.StatusBadRequest, "Invalid phone number")
		return
	}
	if len(req.Password) < minPasswordLength {
		respondError(w, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}

	ctx, cancel := storeCtx(r)
	defer cancel()

	user, err := a.Auth.Register(ctx, req.Name, req.Phone, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPhoneTaken) {
			respondError(w, http.StatusConflict, "Phone number already registered")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	token, err := a.Sessions.Create(ctx, user)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}
	a.setSessionCookie(w, token)
	respondJSON(w, http.StatusCreated, map[string]*models.User{"user": user})
}

// Login verifies credentials and issues a new session. Any earlier
// session for the same user is invalidated by the session store.
func (a *API) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Phone = strings.TrimSpace(req.Phone)
	if req.Phone == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Phone and password are required")
		return
	}

	ctx, cancel := storeCtx(r)
	defer cancel()

	user, err := a.Auth.Authenticate(ctx, req.Phone, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			respondError(w, http.StatusUnauthorized, "Invalid phone number or password")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	token, err := a.Sessions.Create(ctx, user)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}
	a.setSessionCookie(w, token)
	respondJSON(w, http.StatusOK, map[string]*models.User{"user": user})
}

// Logout destroys the current session if one exists and clears the
// cookie either way.
func (a *API) Logout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := storeCtx(r)
	defer cancel()

	if token := middleware.SessionToken(r); token != "" {
		if err := a.Sessions.Destroy(ctx, token); err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to log out")
			return
		}
	}
	a.clearSessionCookie(w)
	respondJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

// Me returns the authenticated user's snapshot.
func (a *API) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	respondJSON(w, http.StatusOK, map[string]*models.User{"user": user})
}
