// Package validation valida los DTO de entrada según sus tags `validate:` (go-playground/validator).
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/catalogo-productos/internal/domain"
)

// MaxPriceScale número máximo de decimales aceptados en un precio.
const MaxPriceScale = 2

// MaxPrice mayor precio que cabe en la columna NUMERIC(12,2).
var MaxPrice = decimal.RequireFromString("9999999999.99")

var (
	once     sync.Once
	instance *validator.Validate
)

func get() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		// Los nombres de campo en los errores usan el tag json (name, price, category_id).
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		// decimal.Decimal se valida como su representación textual.
		v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
			if d, ok := field.Interface().(decimal.Decimal); ok {
				return d.String()
			}
			return nil
		}, decimal.Decimal{})
		_ = v.RegisterValidation("price", validPrice)
		instance = v
	})
	return instance
}

// validPrice: numérico, entre 0 y MaxPrice y con a lo sumo MaxPriceScale decimales.
func validPrice(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}
	return IsValidPrice(d)
}

// IsValidPrice indica si d es un precio aceptable: 0 <= d <= MaxPrice con a lo sumo MaxPriceScale decimales.
func IsValidPrice(d decimal.Decimal) bool {
	if d.IsNegative() || d.GreaterThan(MaxPrice) {
		return false
	}
	return d.Equal(d.Round(MaxPriceScale))
}

// Struct valida s. Los errores de validación se devuelven envueltos en domain.ErrInvalidInput
// con el detalle campo por campo.
func Struct(s interface{}) error {
	err := get().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " es requerido"
	case "min":
		return fmt.Sprintf("%s debe tener al menos %s caracteres", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s admite como máximo %s caracteres", fe.Field(), fe.Param())
	case "uuid":
		return fe.Field() + " debe ser un identificador válido"
	case "price":
		return fmt.Sprintf("%s debe ser un número entre 0 y %s con máximo %d decimales", fe.Field(), MaxPrice.StringFixed(MaxPriceScale), MaxPriceScale)
	default:
		return fe.Field() + " inválido"
	}
}
