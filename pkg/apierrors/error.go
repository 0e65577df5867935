package apierrors

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/iPad7/gantt-4team/pkg/translator"
)

// JsonErr represents the JSON structure for apierrors.
type JsonErr struct {
	ErrDetails Err `json:"error"`
}

// Err carries the HTTP code, the translated message and, for validation
// failures, the offending request field.
type Err struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func (e JsonErr) Error() string {
	if e.ErrDetails.Field != "" {
		return fmt.Sprintf("Code: %d, Message: %s, Field: %s", e.ErrDetails.Code, e.ErrDetails.Message, e.ErrDetails.Field)
	}
	return fmt.Sprintf("Code: %d, Message: %s", e.ErrDetails.Code, e.ErrDetails.Message)
}

// CreateError generates a JsonErr with a translated message.
func CreateError(code int, msgKey string, lang string) JsonErr {
	return JsonErr{ErrDetails: Err{Code: code, Message: GetTransErrorMsg(msgKey, lang, nil)}}
}

// CreateFieldError generates a JsonErr naming the rejected field. The field
// is available to the message template as {{.Field}}.
func CreateFieldError(code int, msgKey string, field string, lang string) JsonErr {
	message := GetTransErrorMsg(msgKey, lang, map[string]any{"Field": field})
	return JsonErr{ErrDetails: Err{Code: code, Message: message, Field: field}}
}

// GetTransErrorMsg retrieves the translated error message, or the key when
// no translation exists.
func GetTransErrorMsg(msgKey string, lang string, data map[string]any) string {
	msg, err := translator.Localize(lang, msgKey, data)
	if err != nil {
		zap.L().Warn("translation not found", zap.String("lang", lang), zap.String("message_id", msgKey), zap.Error(err))
		return msgKey
	}
	return msg
}
