package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/hongminglow/quantum-trade/internal/http/respond"
	"github.com/hongminglow/quantum-trade/internal/i18n"
	"github.com/hongminglow/quantum-trade/internal/middleware"
	"github.com/hongminglow/quantum-trade/internal/notify"
	"github.com/hongminglow/quantum-trade/internal/profile"
)

// base is shared by handlers that act on the caller's profile.
type base struct {
	profiles *profile.Registry
	log      *zap.Logger
}

// profile resolves the request's profile, writing a 500 and returning nil on failure.
func (b base) profile(w http.ResponseWriter, r *http.Request) *profile.Profile {
	id, ok := middleware.ProfileID(r.Context())
	if !ok {
		b.log.Error("request without profile", zap.String("path", r.URL.Path))
		respond.Error(w, http.StatusInternalServerError, "profile unavailable")
		return nil
	}
	p, err := b.profiles.Get(r.Context(), id)
	if err != nil {
		b.log.Error("open profile", zap.String("profile_id", id), zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "profile unavailable")
		return nil
	}
	return p
}

// text renders key in the profile's language.
func (b base) text(r *http.Request, p *profile.Profile, key i18n.Key) string {
	lang, err := p.Preferences.Language(r.Context())
	if err != nil {
		b.log.Warn("read language", zap.String("profile_id", p.ID), zap.Error(err))
		lang = i18n.Default
	}
	return i18n.Text(lang, key)
}

// notify shows key as a toast and answers with it in the envelope.
func (b base) notify(w http.ResponseWriter, r *http.Request, p *profile.Profile, status int, sev notify.Severity, key i18n.Key, data any, redirect string) {
	msg := b.text(r, p, key)
	n := p.Notifications.Notify(msg, sev)
	respond.Write(w, respond.Envelope{
		Code:         status,
		Message:      msg,
		Data:         data,
		Redirect:     redirect,
		Notification: &n,
	})
}

// internalError logs err and writes a generic 500.
func (b base) internalError(w http.ResponseWriter, msg string, err error) {
	b.log.Error(msg, zap.Error(err))
	respond.Error(w, http.StatusInternalServerError, msg)
}
