package dto

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var registerOnce sync.Once

// RegisterValidators teaches gin's validator about decimal amounts:
//
//	dgt0  decimal strictly greater than zero
//	dgte0 decimal greater than or equal to zero
//	drate decimal within [0, 1]
func RegisterValidators() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}
		err = registerDecimalRules(v)
	})
	return err
}

func registerDecimalRules(v *validator.Validate) error {
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})

	rules := map[string]func(decimal.Decimal) bool{
		"dgt0":  func(d decimal.Decimal) bool { return d.IsPositive() },
		"dgte0": func(d decimal.Decimal) bool { return !d.IsNegative() },
		"drate": func(d decimal.Decimal) bool { return !d.IsNegative() && d.LessThanOrEqual(decimal.NewFromInt(1)) },
	}
	for tag, rule := range rules {
		if err := v.RegisterValidation(tag, decimalRule(rule)); err != nil {
			return fmt.Errorf("register %s validator: %w", tag, err)
		}
	}
	return nil
}

func decimalRule(rule func(decimal.Decimal) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		s, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return false
		}
		return rule(d)
	}
}
