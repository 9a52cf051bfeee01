// Package i18n holds the bot's message catalog in English and Serbian
// (latin script).
package i18n

import (
	"strings"

	"github.com/kosmosbot/kosmos/internal/models"
)

// T returns the message for key in lang. An unknown language falls back to
// English; an unknown key comes back verbatim so a typo shows up in chat
// instead of vanishing. args are name/value pairs substituted into {name}
// placeholders.
func T(lang, key string, args ...string) string {
	catalog, ok := messages[lang]
	if !ok {
		catalog = messages[models.LanguageEnglish]
	}
	text, ok := catalog[key]
	if !ok {
		return key
	}
	for i := 0; i+1 < len(args); i += 2 {
		text = strings.ReplaceAll(text, "{"+args[i]+"}", args[i+1])
	}
	return text
}
