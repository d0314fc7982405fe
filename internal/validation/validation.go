package validation

import (
	"errors"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// MustRegisterGin installs a custom tag on gin's binding validator.
// Called from init; a failure here is a programming error.
func MustRegisterGin(tag string, fn validator.Func) {
	if err := RegisterGin(tag, fn); err != nil {
		panic(err)
	}
}

func MustRegisterGinAlias(tag, alias string) {
	if err := RegisterGinAlias(tag, alias); err != nil {
		panic(err)
	}
}

func RegisterGin(tag string, fn validator.Func) error {
	v, err := ginValidator()
	if err != nil {
		return err
	}
	return v.RegisterValidation(tag, fn)
}

func RegisterGinAlias(tag, alias string) error {
	v, err := ginValidator()
	if err != nil {
		return err
	}
	v.RegisterAlias(tag, alias)
	return nil
}

func ginValidator() (*validator.Validate, error) {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil, errors.New("validator engine is not of type *validator.Validate")
	}
	return v, nil
}
