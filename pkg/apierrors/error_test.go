package apierrors_test

import (
	"os"
	"testing"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"

	"github.com/iPad7/gantt-4team/pkg/apierrors"
	"github.com/iPad7/gantt-4team/pkg/translator"
)

func TestMain(m *testing.M) {
	translator.Translator = i18n.NewBundle(language.English)
	err := translator.Translator.AddMessages(language.English,
		&i18n.Message{ID: "test_key", Other: "Test message"},
		&i18n.Message{ID: "field_key", Other: "Invalid value for field {{.Field}}"},
	)
	if err != nil {
		os.Exit(1)
	}
	err = translator.Translator.AddMessages(language.French,
		&i18n.Message{ID: "field_key", Other: "Valeur invalide pour le champ {{.Field}}"},
	)
	if err != nil {
		os.Exit(1)
	}
	os.Exit(m.Run())
}

func TestCreateError_ReturnsJsonErr(t *testing.T) {
	err := apierrors.CreateError(400, "test_key", "en")
	assert.Equal(t, 400, err.ErrDetails.Code)
	assert.Equal(t, "Test message", err.ErrDetails.Message)
	assert.Empty(t, err.ErrDetails.Field)
}

func TestCreateFieldError_RendersField(t *testing.T) {
	err := apierrors.CreateFieldError(400, "field_key", "start_date", "fr")
	assert.Equal(t, "start_date", err.ErrDetails.Field)
	assert.Equal(t, "Valeur invalide pour le champ start_date", err.ErrDetails.Message)
	assert.Equal(t, "Code: 400, Message: Valeur invalide pour le champ start_date, Field: start_date", err.Error())
}

func TestGetTransErrorMsg_ReturnsTranslation(t *testing.T) {
	msg := apierrors.GetTransErrorMsg("test_key", "en", nil)
	assert.Equal(t, "Test message", msg)
}

func TestGetTransErrorMsg_FallsBackToEnglish(t *testing.T) {
	msg := apierrors.GetTransErrorMsg("test_key", "ko", nil)
	assert.Equal(t, "Test message", msg)
}

func TestGetTransErrorMsg_FallbackToKey(t *testing.T) {
	msg := apierrors.GetTransErrorMsg("unknown_key", "en", nil)
	assert.Equal(t, "unknown_key", msg)
}

func TestJsonErr_ErrorMethod(t *testing.T) {
	err := apierrors.CreateError(500, "test_key", "en")
	assert.Equal(t, "Code: 500, Message: Test message", err.Error())
}
