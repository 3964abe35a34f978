package translate

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// BadCurlyQuoteKey is the catalog key for typographic quotes in code.
const BadCurlyQuoteKey = "editor.status.bad_curly_quote"

// Catalog holds the localized strings the translator uses.
var Catalog = newCatalog()

func newCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	must(b.SetString(language.English, BadCurlyQuoteKey,
		"Curly quotes like %c don't work. Use straight quotes. Ctrl-T to autocorrect."))
	must(b.SetString(language.German, BadCurlyQuoteKey,
		"Typografische Anführungszeichen wie %c funktionieren nicht. Verwende gerade Anführungszeichen. Strg-T korrigiert automatisch."))
	must(b.SetString(language.Spanish, BadCurlyQuoteKey,
		"Las comillas tipográficas como %c no funcionan. Usa comillas rectas. Ctrl-T para corregir automáticamente."))
	return b
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// NewPrinter returns a printer for the given locale, e.g. "de" or "en-US".
// Unknown or malformed locales fall back to English.
func NewPrinter(locale string) *message.Printer {
	tag, err := language.Parse(locale)
	if err != nil {
		return message.NewPrinter(language.English, message.Catalog(Catalog))
	}
	supported := Catalog.Languages()
	_, idx, conf := language.NewMatcher(supported).Match(tag)
	if conf == language.No {
		return message.NewPrinter(language.English, message.Catalog(Catalog))
	}
	return message.NewPrinter(supported[idx], message.Catalog(Catalog))
}
