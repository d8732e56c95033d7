package server

import (
	"testing"

	"github.com/esemashko/v2-service-time/locales"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

var usedMessageIDs = []string{
	"api.title",
	"api.endpoint.root",
	"api.endpoint.time",
	"api.endpoint.date",
	"api.endpoint.convert_time",
	"api.endpoint.timezones",
	"api.endpoint.health",
	"error.internal",
	"error.time.invalid_format",
	"error.time.out_of_range",
	"error.timezone.required",
	"error.timezone.unknown",
	"error.timezone.database_unavailable",
}

func TestTranslationsCoverEveryLanguage(t *testing.T) {
	bundle, err := InitI18n()
	require.NoError(t, err)
	tags := make([]string, 0, 2)
	for _, tag := range bundle.LanguageTags() {
		tags = append(tags, tag.String())
	}
	assert.ElementsMatch(t, []string{"en", "ru"}, tags)

	for _, lang := range []string{"en", "ru"} {
		// Без fallback-языка отсутствующий ключ даст ошибку
		localizer := i18n.NewLocalizer(bundle, lang)
		for _, id := range usedMessageIDs {
			msg, err := localizer.Localize(&i18n.LocalizeConfig{
				MessageID:    id,
				TemplateData: map[string]string{"Value": "x", "Aliases": "moscow"},
			})
			require.NoError(t, err, "%s: %s", lang, id)
			assert.NotEmpty(t, msg)
		}
	}
}

func TestLoadTranslationsFromEmbeddedFS(t *testing.T) {
	bundle := i18n.NewBundle(language.English)
	require.NoError(t, LoadTranslations(bundle, locales.FS))
	assert.Len(t, bundle.LanguageTags(), 2)
}
