package translator

import (
	"os"
	"path/filepath"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

var Translator *i18n.Bundle

type Config struct {
	TranslationFolder  string
	SupportedLanguages []string
}

const (
	LanguageEn = "en"
	LanguageFr = "fr"
	LanguageKo = "ko"
)

var supported = language.NewMatcher([]language.Tag{language.English, language.French, language.Korean})

func InitTranslator(cfg Config) {
	Translator = i18n.NewBundle(language.English)
	Translator.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	files, err := os.ReadDir(cfg.TranslationFolder)
	if err != nil {
		zap.L().Error("failed to list translation folder", zap.String("folder", cfg.TranslationFolder), zap.Error(err))
		return
	}

	for _, f := range files {
		if f.IsDir() || filepath.Ext(f.Name()) != ".toml" {
			continue
		}
		if _, err := Translator.LoadMessageFile(filepath.Join(cfg.TranslationFolder, f.Name())); err != nil {
			zap.L().Warn("failed to load translation file", zap.String("file", f.Name()), zap.Error(err))
		}
	}
}

// MatchLanguage reduces an Accept-Language header to one of the bundled
// languages, English when nothing matches.
func MatchLanguage(header string) string {
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return LanguageEn
	}
	_, index, confidence := supported.Match(tags...)
	if confidence == language.No {
		return LanguageEn
	}
	return []string{LanguageEn, LanguageFr, LanguageKo}[index]
}

// Localize renders messageID in lang, falling back to English and then to
// the id itself.
func Localize(lang, messageID string, data map[string]any) (string, error) {
	if Translator == nil {
		return messageID, nil
	}
	localizer := i18n.NewLocalizer(Translator, lang, LanguageEn)
	return localizer.Localize(&i18n.LocalizeConfig{MessageID: messageID, TemplateData: data})
}
