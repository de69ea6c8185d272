package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/hongminglow/quantum-trade/internal/http/respond"
	"github.com/hongminglow/quantum-trade/internal/i18n"
	"github.com/hongminglow/quantum-trade/internal/market"
	"github.com/hongminglow/quantum-trade/internal/models/dto"
	"github.com/hongminglow/quantum-trade/internal/notify"
	"github.com/hongminglow/quantum-trade/internal/profile"
	"github.com/hongminglow/quantum-trade/internal/userdb"
)

// Quotes is the market data source.
type Quotes interface {
	Snapshot() []market.Quote
}

// SiteHandler serves the landing page widgets: ticker, trading entry, demo,
// language switch and the notification slot.
type SiteHandler struct {
	base
	quotes    Quotes
	homePage  string
	loginPage string
}

// NewSiteHandler constructs the handler. loginPage is where unauthenticated traders
// are sent; homePage is where a language switch lands.
func NewSiteHandler(profiles *profile.Registry, quotes Quotes, homePage, loginPage string, log *zap.Logger) *SiteHandler {
	return &SiteHandler{base: base{profiles: profiles, log: log}, quotes: quotes, homePage: homePage, loginPage: loginPage}
}

// Register attaches the routes.
func (h *SiteHandler) Register(r chi.Router) {
	r.Get("/market", h.handleMarket)
	r.Post("/trading/start", h.handleStartTrading)
	r.Post("/demo", h.handleDemo)
	r.Get("/preferences/language", h.handleGetLanguage)
	r.Put("/preferences/language", h.handleSetLanguage)
	r.Get("/notification", h.handleGetNotification)
	r.Delete("/notification", h.handleDismissNotification)
}

func (h *SiteHandler) handleMarket(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, "ok", h.quotes.Snapshot())
}

func (h *SiteHandler) handleStartTrading(w http.ResponseWriter, r *http.Request) {
	p := h.profile(w, r)
	if p == nil {
		return
	}
	_, err := p.Users.RequireUser(r.Context())
	switch {
	case errors.Is(err, userdb.ErrNotAuthenticated):
		respond.Write(w, respond.Envelope{
			Code:     http.StatusUnauthorized,
			Message:  h.text(r, p, i18n.LoginRequired),
			Redirect: h.loginPage,
		})
	case err != nil:
		h.internalError(w, "failed to read session", err)
	default:
		h.notify(w, r, p, http.StatusOK, notify.Info, i18n.TradingLaunch, nil, "")
	}
}

func (h *SiteHandler) handleDemo(w http.ResponseWriter, r *http.Request) {
	p := h.profile(w, r)
	if p == nil {
		return
	}
	h.notify(w, r, p, http.StatusOK, notify.Info, i18n.DemoActivated, nil, "")
}

func (h *SiteHandler) handleGetLanguage(w http.ResponseWriter, r *http.Request) {
	p := h.profile(w, r)
	if p == nil {
		return
	}
	lang, err := p.Preferences.Language(r.Context())
	if err != nil {
		h.internalError(w, "failed to read language", err)
		return
	}
	respond.JSON(w, http.StatusOK, "ok", dto.LanguageRequest{Language: lang})
}

func (h *SiteHandler) handleSetLanguage(w http.ResponseWriter, r *http.Request) {
	p := h.profile(w, r)
	if p == nil {
		return
	}
	var req dto.LanguageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if err := p.Preferences.SetLanguage(r.Context(), req.Language); err != nil {
		if errors.Is(err, profile.ErrUnsupportedLanguage) {
			respond.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		h.internalError(w, "failed to save language", err)
		return
	}
	respond.Write(w, respond.Envelope{
		Code:     http.StatusOK,
		Message:  "ok",
		Data:     req,
		Redirect: h.homePage,
	})
}

func (h *SiteHandler) handleGetNotification(w http.ResponseWriter, r *http.Request) {
	p := h.profile(w, r)
	if p == nil {
		return
	}
	n, ok := p.Notifications.Current()
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	respond.JSON(w, http.StatusOK, "ok", n)
}

func (h *SiteHandler) handleDismissNotification(w http.ResponseWriter, r *http.Request) {
	p := h.profile(w, r)
	if p == nil {
		return
	}
	p.Notifications.Dismiss()
	w.WriteHeader(http.StatusNoContent)
}
