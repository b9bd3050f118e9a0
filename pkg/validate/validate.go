// Package validate normaliza la validación de formularios y payloads de API.
// Envuelve go-playground/validator para producir un mapa plano campo → mensaje
// legible, usado de forma uniforme por handlers y por el SDK antes de enviar.
package validate

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var phoneRe = regexp.MustCompile(`^\+?[\d\s\-().]+$`)

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New(validator.WithRequiredStructEnabled())

	// Los errores se reportan con el nombre del tag json, no el del campo Go.
	val.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	// phone: formato laxo de teléfono (dígitos, espacios, guiones, paréntesis).
	_ = val.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return true
		}
		return phoneRe.MatchString(s)
	})

	// strongpassword: mínimo 8 caracteres con mayúscula, minúscula y dígito.
	_ = val.RegisterValidation("strongpassword", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if len(s) < 8 {
			return false
		}
		var upper, lower, digit bool
		for _, r := range s {
			switch {
			case unicode.IsUpper(r):
				upper = true
			case unicode.IsLower(r):
				lower = true
			case unicode.IsDigit(r):
				digit = true
			}
		}
		return upper && lower && digit
	})

	return val
}

// Struct valida un struct con tags `validate` y devuelve un mapa plano
// campo → mensaje. Mapa vacío (nil) significa que la validación pasó.
// Campos anidados se reportan con notación de punto: "address.city".
func Struct(s any) map[string]string {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"general": "Validation failed"}
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fieldPath(fe)] = message(fe)
	}
	return out
}

// fieldPath convierte "LoginForm.email" en "email" y
// "CustomerForm.address.city" en "address.city".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx != -1 {
		return ns[idx+1:]
	}
	return fe.Field()
}

// message traduce cada tag de validación a un mensaje legible en inglés
// (los mensajes son contrato de la API, siempre en inglés).
func message(fe validator.FieldError) string {
	label := fieldLabel(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label)
	case "email":
		return "Please enter a valid email address"
	case "phone":
		return "Please enter a valid phone number"
	case "strongpassword":
		return "Password must be at least 8 characters and contain an uppercase letter, a lowercase letter and a number"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("At least %s item is required", fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", label, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", label, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be positive", label)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "eqfield":
		if strings.EqualFold(fe.Param(), "password") {
			return "Passwords don't match"
		}
		return fmt.Sprintf("%s must match %s", label, fe.Param())
	case "uuid":
		return fmt.Sprintf("%s must be a valid identifier", label)
	default:
		return fmt.Sprintf("%s is invalid", label)
	}
}

// fieldLabel convierte un nombre de campo json en etiqueta legible:
// "password" → "Password", "firstName" → "First name", "tenant_name" → "Tenant name".
func fieldLabel(field string) string {
	field = strings.ReplaceAll(field, "_", " ")
	var b strings.Builder
	for i, r := range field {
		if unicode.IsUpper(r) && i > 0 {
			b.WriteRune(' ')
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	s := b.String()
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
