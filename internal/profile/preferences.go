package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/hongminglow/quantum-trade/internal/i18n"
	"github.com/hongminglow/quantum-trade/internal/storage"
)

// LanguageKey holds the chosen interface language.
const LanguageKey = "quantum_lang"

// ErrUnsupportedLanguage is returned for languages without a message catalog.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Preferences reads and writes per-profile settings.
type Preferences struct {
	kv storage.KeyValueStore
}

// NewPreferences wraps kv.
func NewPreferences(kv storage.KeyValueStore) *Preferences {
	return &Preferences{kv: kv}
}

// Language returns the stored language, or i18n.Default when none is set.
func (p *Preferences) Language(ctx context.Context) (string, error) {
	lang, ok, err := p.kv.Get(ctx, LanguageKey)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", LanguageKey, err)
	}
	if !ok || !i18n.Supported(lang) {
		return i18n.Default, nil
	}
	return lang, nil
}

// SetLanguage persists lang.
func (p *Preferences) SetLanguage(ctx context.Context, lang string) error {
	if !i18n.Supported(lang) {
		return fmt.Errorf("%w: %q", ErrUnsupportedLanguage, lang)
	}
	if err := p.kv.Set(ctx, LanguageKey, lang); err != nil {
		return fmt.Errorf("write %s: %w", LanguageKey, err)
	}
	return nil
}
