package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProfileCookie carries the signed profile token.
const ProfileCookie = "quantum_profile"

type profileKey struct{}

// ProfileTokens signs and verifies profile tokens.
type ProfileTokens interface {
	Generate(profileID string) (string, error)
	Parse(token string) (string, error)
}

// WithProfileID returns ctx carrying id.
func WithProfileID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, profileKey{}, id)
}

// ProfileID returns the profile resolved for the request.
func ProfileID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(profileKey{}).(string)
	return id, ok && id != ""
}

// Profile resolves the caller's profile from its cookie. Requests without a
// valid cookie get a fresh profile and a new cookie.
func Profile(tokens ProfileTokens, maxAge int, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if c, err := r.Cookie(ProfileCookie); err == nil {
				id, err := tokens.Parse(c.Value)
				if err == nil {
					next.ServeHTTP(w, r.WithContext(WithProfileID(r.Context(), id)))
					return
				}
				log.Debug("profile cookie rejected", zap.Error(err))
			}

			id := uuid.NewString()
			token, err := tokens.Generate(id)
			if err != nil {
				log.Error("issue profile token", zap.Error(err))
				http.Error(w, "internal server error", http.StatusInternalServerError)
				return
			}
			http.SetCookie(w, &http.Cookie{
				Name:     ProfileCookie,
				Value:    token,
				Path:     "/",
				MaxAge:   maxAge,
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
			next.ServeHTTP(w, r.WithContext(WithProfileID(r.Context(), id)))
		})
	}
}
