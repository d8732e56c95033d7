package utils

import (
	"context"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

// DefaultLanguage язык по умолчанию для сообщений API
const DefaultLanguage = "en"

type languageContextKey struct{}

var (
	i18nBundle *i18n.Bundle
	// Кеш локализаторов для разных языков
	localizerCache = make(map[string]*i18n.Localizer)
	localizerMutex sync.RWMutex
)

// SetI18nBundle устанавливает глобальный bundle для локализации
func SetI18nBundle(bundle *i18n.Bundle) {
	localizerMutex.Lock()
	defer localizerMutex.Unlock()
	i18nBundle = bundle
	// Очищаем кеш при установке нового bundle
	localizerCache = make(map[string]*i18n.Localizer)
}

// GetI18nBundle возвращает глобальный bundle для локализации
func GetI18nBundle() *i18n.Bundle {
	localizerMutex.RLock()
	defer localizerMutex.RUnlock()
	return i18nBundle
}

// WithLanguage сохраняет язык запроса в контексте
func WithLanguage(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, languageContextKey{}, lang)
}

// GetLanguage возвращает язык запроса из контекста или DefaultLanguage
func GetLanguage(ctx context.Context) string {
	if ctx == nil {
		return DefaultLanguage
	}
	if lang, ok := ctx.Value(languageContextKey{}).(string); ok && lang != "" {
		return lang
	}
	return DefaultLanguage
}

// getLocalizer возвращает закешированный локализатор или создает новый
func getLocalizer(lang string) *i18n.Localizer {
	localizerMutex.RLock()
	if localizer, ok := localizerCache[lang]; ok {
		localizerMutex.RUnlock()
		return localizer
	}
	localizerMutex.RUnlock()

	localizerMutex.Lock()
	defer localizerMutex.Unlock()

	// double-check после получения write lock
	if localizer, ok := localizerCache[lang]; ok {
		return localizer
	}
	if i18nBundle == nil {
		return nil
	}

	langTag, err := language.Parse(lang)
	if err != nil {
		langTag = language.English
	}

	localizer := i18n.NewLocalizer(i18nBundle, langTag.String(), DefaultLanguage)
	localizerCache[lang] = localizer

	return localizer
}

// TemplateData представляет данные для подстановки в шаблон локализации
type TemplateData map[string]interface{}

// T возвращает локализованную строку по ключу с подстановкой переменных.
// Если bundle не инициализирован или ключ не найден, возвращает messageID.
func T(ctx context.Context, messageID string, data ...TemplateData) string {
	lang := GetLanguage(ctx)

	localizer := getLocalizer(lang)
	if localizer == nil {
		Logger.Warn("Localizer is not available",
			zap.String("messageID", messageID),
			zap.String("language", lang),
		)
		return messageID
	}

	config := &i18n.LocalizeConfig{
		MessageID: messageID,
	}
	if len(data) > 0 {
		config.TemplateData = data[0]
	}

	msg, err := localizer.Localize(config)
	if err != nil {
		Logger.Error("Failed to localize message",
			zap.String("messageID", messageID),
			zap.Error(err),
		)
		return messageID
	}

	return msg
}
