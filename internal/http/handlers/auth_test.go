package handlers

import (
	"strings"
	"testing"

	"github.com/hongminglow/quantum-trade/internal/i18n"
	"github.com/hongminglow/quantum-trade/internal/models/dto"
)

func TestValidateRegistration(t *testing.T) {
	tests := []struct {
		name string
		req  dto.RegisterRequest
		want i18n.Key
	}{
		{"ok", dto.RegisterRequest{Name: "A", Email: "a@x.com", Password: "secret", ConfirmPassword: "secret"}, ""},
		{"longer than bcrypt's input limit", dto.RegisterRequest{Name: "A", Email: "a@x.com", Password: strings.Repeat("a", 100), ConfirmPassword: strings.Repeat("a", 100)}, ""},
		{"six runes", dto.RegisterRequest{Name: "A", Email: "a@x.com", Password: "пароль", ConfirmPassword: "пароль"}, ""},
		{"empty email", dto.RegisterRequest{Name: "A", Password: "secret", ConfirmPassword: "secret"}, i18n.FieldsRequired},
		{"empty password", dto.RegisterRequest{Name: "A", Email: "a@x.com"}, i18n.FieldsRequired},
		{"mismatch checked before length", dto.RegisterRequest{Name: "A", Email: "a@x.com", Password: "abc", ConfirmPassword: "abd"}, i18n.PasswordMismatch},
		{"too short", dto.RegisterRequest{Name: "A", Email: "a@x.com", Password: "abcde", ConfirmPassword: "abcde"}, i18n.PasswordTooShort},
	}
	for _, tt := range tests {
		if got := validateRegistration(tt.req); got != tt.want {
			t.Errorf("%s: got %q want %q", tt.name, got, tt.want)
		}
	}
}
