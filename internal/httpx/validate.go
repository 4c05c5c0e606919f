// Package httpx holds the Fiber response/validation glue shared by every
// handler: the error-envelope mapper, OK/Created/NoContent helpers, and a
// validator.v10-backed body binder, adapted from the teacher's own
// common/net/http package (withBody.go/errors.go) onto the gateway's own
// apperr taxonomy instead of midaz's common.*Error types.
package httpx

import (
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"

	"github.com/bondifuzz/api-gateway/internal/apperr"
)

var (
	validate *validator.Validate
	trans    ut.Translator
)

func init() {
	locale := en.New()
	uni := ut.New(locale, locale)
	trans, _ = uni.GetTranslator("en")

	validate = validator.New()
	_ = entranslations.RegisterDefaultTranslations(validate, trans)

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})
}

// ValidateStruct runs struct-tag validation and maps the first failing
// field into E_WRONG_REQUEST with the translated message as a param, the
// uniform shape every handler's 422 response takes.
func ValidateStruct(s any) error {
	if err := validate.Struct(s); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok || len(verrs) == 0 {
			return apperr.New(apperr.EWrongRequest)
		}

		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fe.Translate(trans))
		}

		return apperr.New(apperr.EWrongRequest, strings.Join(msgs, "; "))
	}

	return nil
}
