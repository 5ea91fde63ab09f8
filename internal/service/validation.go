package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateStruct прогоняет теги validate и сворачивает ошибки в ErrValidation
func validateStruct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			fields = append(fields, fmt.Sprintf("%s(%s=%s)", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			fields = append(fields, fmt.Sprintf("%s(%s)", fe.Field(), fe.Tag()))
		}
	}
	return &ValidationError{Fields: verrs, msg: strings.Join(fields, ", ")}
}

// ValidationError список полей, не прошедших проверку
type ValidationError struct {
	Fields validator.ValidationErrors
	msg    string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.msg
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// FieldNames имена полей с ошибками (для сообщений пользователю)
func (e *ValidationError) FieldNames() []string {
	names := make([]string, 0, len(e.Fields))
	for _, fe := range e.Fields {
		names = append(names, fe.Field())
	}
	return names
}
