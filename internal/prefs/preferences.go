package prefs

import (
	"context"
	"fmt"

	"familyspend/internal/core"
	"familyspend/internal/i18n"
)

// Preferences are the persisted display settings.
type Preferences struct {
	Theme    core.Theme
	Language i18n.Language
}

// Defaults returns the settings used when nothing is stored.
func Defaults() Preferences {
	return Preferences{Theme: core.Light, Language: i18n.DefaultLanguage}
}

// Load reads both preferences, using def for any that are absent. Stored
// values outside the supported sets are normalized.
func Load(ctx context.Context, s Store, def Preferences) (Preferences, error) {
	p := def

	theme, ok, err := s.Get(ctx, KeyTheme)
	if err != nil {
		return def, fmt.Errorf("load theme: %w", err)
	}
	if ok {
		p.Theme = core.ParseTheme(theme)
	}

	lang, ok, err := s.Get(ctx, KeyLanguage)
	if err != nil {
		return def, fmt.Errorf("load language: %w", err)
	}
	if ok {
		p.Language = i18n.ParseLanguage(lang)
	}

	return p, nil
}

// SaveTheme writes the theme preference.
func SaveTheme(ctx context.Context, s Store, t core.Theme) error {
	return s.Set(ctx, KeyTheme, string(t))
}

// SaveLanguage writes the language preference.
func SaveLanguage(ctx context.Context, s Store, l i18n.Language) error {
	return s.Set(ctx, KeyLanguage, string(l))
}
