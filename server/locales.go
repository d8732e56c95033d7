package server

import (
	"encoding/json"
	"io/fs"
	"strings"

	"github.com/esemashko/v2-service-time/locales"
	"github.com/esemashko/v2-service-time/utils"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

// InitI18n инициализирует систему интернационализации
func InitI18n() (*i18n.Bundle, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	if err := LoadTranslations(bundle, locales.FS); err != nil {
		utils.Logger.Error("Failed to load translations", zap.Error(err))
		return nil, err
	}

	utils.Logger.Info("Translations loaded successfully",
		zap.Int("languages", len(bundle.LanguageTags())),
	)
	return bundle, nil
}

// LoadTranslations загружает все JSON файлы локализации из fsys
func LoadTranslations(bundle *i18n.Bundle, fsys fs.FS) error {
	return fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".json") {
			return nil
		}
		utils.Logger.Debug("Loading translation file", zap.String("file", path))
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return err
		}
		_, err = bundle.ParseMessageFileBytes(data, path)
		return err
	})
}
