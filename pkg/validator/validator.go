package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct valida los tags `validate` de un DTO y devuelve un mensaje
// legible por campo, o "" si todo es válido.
func ValidateStruct(data interface{}) string {
	err := validate.Struct(data)
	if err == nil {
		return ""
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return strings.Join(msgs, "; ")
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s es requerido", field)
	case "email":
		return fmt.Sprintf("%s debe ser un email válido", field)
	case "min":
		return fmt.Sprintf("%s debe ser como mínimo %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s debe ser como máximo %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s no cumple la regla %s", field, fe.Tag())
	}
}
