package validation

import (
	"reflect"

	"github.com/aarondl/null/v8"
	"github.com/go-playground/validator/v10"
)

// registerNullTypes учит валидатор "смотреть внутрь" типов null.String, null.Uint64 и т.д.
func registerNullTypes(v *validator.Validate) {
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if val, ok := field.Interface().(null.String); ok {
			if val.Valid {
				return val.String
			}
		}
		return nil // чтобы сработал `omitempty`
	}, null.String{})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if val, ok := field.Interface().(null.Uint64); ok {
			if val.Valid {
				return val.Uint64
			}
		}
		return nil
	}, null.Uint64{})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if val, ok := field.Interface().(null.Time); ok {
			if val.Valid {
				return val.Time
			}
		}
		return nil
	}, null.Time{})
}
