package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/hongminglow/quantum-trade/internal/http/respond"
	"github.com/hongminglow/quantum-trade/internal/i18n"
	"github.com/hongminglow/quantum-trade/internal/models/dto"
	"github.com/hongminglow/quantum-trade/internal/notify"
	"github.com/hongminglow/quantum-trade/internal/profile"
	"github.com/hongminglow/quantum-trade/internal/userdb"
)

// MinPasswordLength is the shortest password the register form accepts.
const MinPasswordLength = 6

// AuthHandler owns register/login/logout endpoints backed by the profile's user store.
type AuthHandler struct {
	base
	homePage string
}

// NewAuthHandler constructs the handler. homePage is the redirect target after sign-in.
func NewAuthHandler(profiles *profile.Registry, homePage string, log *zap.Logger) *AuthHandler {
	return &AuthHandler{base: base{profiles: profiles, log: log}, homePage: homePage}
}

// Register attaches auth routes to the router.
func (h *AuthHandler) Register(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.handleRegister)
		r.Post("/login", h.handleLogin)
		r.Post("/logout", h.handleLogout)
		r.Get("/me", h.handleMe)
		r.Get("/tab", h.handleTab)
	})
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	p := h.profile(w, r)
	if p == nil {
		return
	}
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if key := validateRegistration(req); key != "" {
		h.notify(w, r, p, http.StatusBadRequest, notify.Error, key, nil, "")
		return
	}

	res, err := p.Users.Register(r.Context(), userdb.Candidate{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.TrimSpace(req.Email),
		Password: req.Password,
	})
	if err != nil {
		h.internalError(w, "failed to create user", err)
		return
	}
	if !res.Success {
		h.notify(w, r, p, http.StatusConflict, notify.Error, res.MessageKey, nil, "")
		return
	}
	h.notify(w, r, p, http.StatusOK, notify.Success, res.MessageKey, dto.AuthResponse{User: res.User.Public()}, h.homePage)
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	p := h.profile(w, r)
	if p == nil {
		return
	}
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	res, err := p.Users.Login(r.Context(), strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		h.internalError(w, "failed to sign in", err)
		return
	}
	if !res.Success {
		h.notify(w, r, p, http.StatusUnauthorized, notify.Error, res.MessageKey, nil, "")
		return
	}
	h.notify(w, r, p, http.StatusOK, notify.Success, res.MessageKey, dto.AuthResponse{User: res.User.Public()}, h.homePage)
}

func (h *AuthHandler) handleLogout(w http.ResponseWriter, r *http.Request) {
	p := h.profile(w, r)
	if p == nil {
		return
	}
	res, err := p.Users.Logout(r.Context())
	if err != nil {
		h.internalError(w, "failed to sign out", err)
		return
	}
	h.notify(w, r, p, http.StatusOK, notify.Success, res.MessageKey, nil, "")
}

func (h *AuthHandler) handleMe(w http.ResponseWriter, r *http.Request) {
	p := h.profile(w, r)
	if p == nil {
		return
	}
	user, ok, err := p.Users.CurrentUser(r.Context())
	if err != nil {
		h.internalError(w, "failed to read session", err)
		return
	}
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	respond.JSON(w, http.StatusOK, "ok", dto.AuthResponse{User: user.Public()})
}

// handleTab picks the active auth form; ?type=register opens registration, anything else login.
func (h *AuthHandler) handleTab(w http.ResponseWriter, r *http.Request) {
	tab := "login"
	if r.URL.Query().Get("type") == "register" {
		tab = "register"
	}
	respond.JSON(w, http.StatusOK, "ok", dto.TabResponse{Tab: tab})
}

// validateRegistration returns the message key of the first failed check, or "".
func validateRegistration(req dto.RegisterRequest) i18n.Key {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return i18n.FieldsRequired
	}
	if req.Password != req.ConfirmPassword {
		return i18n.PasswordMismatch
	}
	if utf8.RuneCountInString(req.Password) < MinPasswordLength {
		return i18n.PasswordTooShort
	}
	return ""
}
