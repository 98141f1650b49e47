package i18n

import (
	"sort"
	"strings"

	"golang.org/x/text/language"
)

// Language is a supported interface language code.
type Language string

const (
	English Language = "en"
	Telugu  Language = "te"
)

// DefaultLanguage is used when no preference is stored.
const DefaultLanguage = English

var (
	supported = []language.Tag{language.English, language.Telugu}
	matcher   = language.NewMatcher(supported)
)

// Languages lists the supported languages in toggle order.
func Languages() []Language {
	return []Language{English, Telugu}
}

// ParseLanguage maps a language code or BCP 47 tag ("te-IN", "en_US") onto a
// supported language. Anything unrecognized yields English.
func ParseLanguage(s string) Language {
	s = strings.TrimSpace(strings.ReplaceAll(s, "_", "-"))
	if s == "" {
		return DefaultLanguage
	}
	tag, err := language.Parse(s)
	if err != nil {
		return DefaultLanguage
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return DefaultLanguage
	}
	return Languages()[idx]
}

// Toggle flips between English and Telugu.
func (l Language) Toggle() Language {
	if l == Telugu {
		return English
	}
	return Telugu
}

// Tag returns the regional tag used for number formatting.
func (l Language) Tag() language.Tag {
	if l == Telugu {
		return language.MustParse("te-IN")
	}
	return language.MustParse("en-IN")
}

func (l Language) String() string { return string(l) }

// Translate looks up key in the table for lang. A missing language or key
// yields the key itself so gaps are visible instead of blank.
func Translate(lang Language, key Key) string {
	if t, ok := tables[lang]; ok {
		if s, ok := t[key]; ok {
			return s
		}
	}
	return string(key)
}

// Translator binds a language to Translate for use in templates.
type Translator struct {
	Lang Language
}

// T translates key in the bound language.
func (t Translator) T(key Key) string {
	return Translate(t.Lang, key)
}

// Missing names a key absent from one language table.
type Missing struct {
	Lang Language
	Key  Key
}

// CheckCoverage reports every (language, key) pair that has no entry.
// An empty result means every key resolves in every language.
func CheckCoverage() []Missing {
	var out []Missing
	for _, lang := range Languages() {
		t := tables[lang]
		for _, k := range Keys() {
			if _, ok := t[k]; !ok {
				out = append(out, Missing{Lang: lang, Key: k})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Lang != out[j].Lang {
			return out[i].Lang < out[j].Lang
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// BillingCaption renders the billing-day caption for a card.
func BillingCaption(lang Language, day int) string {
	d := ordinal(lang, day)
	return strings.ReplaceAll(Translate(lang, BillingOfMonth), "{day}", d)
}
