package model

// Locale identifies one of the site's supported languages.
type Locale string

// SupportedLocales lists every locale the catalog serves, in declaration
// order. The order matters: locale fallback during listing picks the first
// locale in this slice that carries a non-empty title.
var SupportedLocales = []Locale{"zh", "en", "es", "ko", "ja", "fr", "ar"}

// DefaultLocale is used by the UI layer when no locale is negotiated.
const DefaultLocale = Locale("en")

func (l Locale) IsSupported() bool {
	for _, s := range SupportedLocales {
		if l == s {
			return true
		}
	}
	return false
}

func (l Locale) String() string {
	return string(l)
}
