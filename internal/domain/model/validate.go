package model

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
)

type enumValue interface {
	Valid() bool
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func instance() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		// enum accepts any string type that knows its own members.
		err := v.RegisterValidation("enum", func(fl validator.FieldLevel) bool {
			e, ok := fl.Field().Interface().(enumValue)
			return ok && e.Valid()
		})
		if err != nil {
			panic(fmt.Sprintf("model: register enum validation: %v", err))
		}
		validate = v
	})
	return validate
}

// Validate checks a record, or a slice of records, against the model invariants.
func Validate(v any) error {
	var err error
	switch recs := v.(type) {
	case []PerformanceLog:
		err = validateEach(recs)
	case []InjuryRecord:
		err = validateEach(recs)
	case []DietLog:
		err = validateEach(recs)
	case []FinancialRecord:
		err = validateEach(recs)
	case []CareerGoal:
		err = validateEach(recs)
	default:
		err = instance().Struct(v)
	}
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Errorf("%w: %s failed %q", ErrInvalidRecord, fe.Namespace(), fe.Tag())
	}
	return fmt.Errorf("%w: %w", ErrInvalidRecord, err)
}

func validateEach[T any](recs []T) error {
	for i := range recs {
		if err := instance().Struct(recs[i]); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
	}
	return nil
}
