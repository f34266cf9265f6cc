package validate

import (
	"errors"

	enlocale "github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
)

// Validator validates request payloads and renders failures as
// human-readable messages safe to return to the client.
type Validator struct {
	validate *validator.Validate
	trans    ut.Translator
}

// New creates a Validator with English translations registered.
func New() (*Validator, error) {
	locale := enlocale.New()
	uni := ut.New(locale, locale)

	trans, ok := uni.GetTranslator("en")
	if !ok {
		return nil, errors.New("missing en translator")
	}

	v := validator.New(validator.WithRequiredStructEnabled())
	if err := entranslations.RegisterDefaultTranslations(v, trans); err != nil {
		return nil, err
	}

	return &Validator{
		validate: v,
		trans:    trans,
	}, nil
}

// Struct validates s and returns the first failure as an error whose
// message can be shown to the client verbatim.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		return errors.New(validationErrors[0].Translate(v.trans))
	}

	return err
}
