package middleware

import (
	"net/http"

	"github.com/esemashko/v2-service-time/utils"

	"golang.org/x/text/language"
)

// Поддерживаемые языки сообщений, первый используется по умолчанию
var supportedLanguages = []language.Tag{
	language.English,
	language.Russian,
}

var languageMatcher = language.NewMatcher(supportedLanguages)

// DetectLanguage выбирает язык из параметра ?lang= или заголовка Accept-Language
func DetectLanguage(r *http.Request) string {
	tag, _ := language.MatchStrings(languageMatcher, r.URL.Query().Get("lang"), r.Header.Get("Accept-Language"))
	base, _ := tag.Base()
	return base.String()
}

// LanguageMiddleware сохраняет язык запроса в контексте для utils.T
func LanguageMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lang := DetectLanguage(r)
		w.Header().Set("Content-Language", lang)
		next.ServeHTTP(w, r.WithContext(utils.WithLanguage(r.Context(), lang)))
	})
}
