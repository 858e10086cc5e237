// Package validation envuelve go-playground/validator y traduce sus errores a
// domain.ValidationError usando los nombres JSON de los campos.
package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jhoicas/Almacen-api/internal/domain"
)

// Validator valida structs con tags `validate`.
type Validator struct {
	v *validator.Validate
}

// New construye un validador que reporta los campos por su nombre JSON.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return &Validator{v: v}
}

// Struct valida s. Devuelve *domain.ValidationError con los campos que fallaron,
// o nil si todo es válido.
func (x *Validator) Struct(s any) error {
	err := x.v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := domain.NewValidationError()
	for _, fe := range verrs {
		out.Add(fieldPath(fe))
	}
	return out.OrNil()
}

// fieldPath quita el nombre del struct raíz: "payload.items[0].type" -> "items[0].type".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}
