package document

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		if name == "" {
			return f.Name
		}

		return name
	})

	// decimals are checked as numbers so gte/lte apply to them
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}

		return nil
	}, decimal.Decimal{})

	v.RegisterStructValidation(billRules, Draft{})
	v.RegisterStructValidation(adjustmentRules, Adjustment{})

	return v
}

// billRules requires every bill item to reference a product, since bills move stock.
func billRules(sl validator.StructLevel) {
	d, ok := sl.Current().Interface().(Draft)
	if !ok || d.Kind != KindBill {
		return
	}

	for i, item := range d.Items {
		if item.ProductID == nil {
			sl.ReportError(item.ProductID, fmt.Sprintf("items[%d].product_id", i), "ProductID", "required_on_bill", "")
		}
	}
}

var hundred = decimal.NewFromInt(100)

// adjustmentRules bounds the rate of enabled adjustments to [0, 100].
func adjustmentRules(sl validator.StructLevel) {
	adj, ok := sl.Current().Interface().(Adjustment)
	if !ok || !adj.Enabled {
		return
	}

	switch {
	case adj.Rate.IsNegative():
		sl.ReportError(adj.Rate, "rate", "Rate", "gte", "0")
	case adj.Rate.GreaterThan(hundred):
		sl.ReportError(adj.Rate, "rate", "Rate", "lte", "100")
	}
}

// Validate checks a draft and returns a *ValidationError listing every problem.
func Validate(d Draft) error {
	err := validate.Struct(d)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &ValidationError{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field:   fieldPath(fe.Namespace()),
			Message: fieldMessage(fe),
		})
	}

	return out
}

func fieldPath(ns string) string {
	_, rest, found := strings.Cut(ns, ".")
	if !found {
		return ns
	}

	return rest
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "required_on_bill":
		return "is required on bills"
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "min":
		if fe.Kind() == reflect.Slice {
			return "must contain at least " + fe.Param() + " entry"
		}

		return "must be at least " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	case "email":
		return "must be a valid email address"
	default:
		return "is invalid"
	}
}
