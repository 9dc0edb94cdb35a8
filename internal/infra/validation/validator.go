// Package validation runs go-playground/validator form schemas over
// application messages.
package validation

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"prorent/internal/app/dto"
	"prorent/internal/domain/shared/datekey"
)

var ErrValidation = errors.New("validation: invalid form")

// Error maps json field names to the failed rule, e.g. {"guests": "max=20"}.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+":"+e.Fields[name])
	}
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(parts, ", "))
}

func (e *Error) Unwrap() error { return ErrValidation }

// FormCarrier is implemented by messages whose user input should be checked.
type FormCarrier interface {
	Form() any
}

type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)
	_ = v.RegisterValidation("datekey", func(fl validator.FieldLevel) bool {
		return datekey.Valid(fl.Field().String())
	})
	v.RegisterStructValidation(peakRateOrder, dto.PeakRateForm{})
	v.RegisterStructValidation(draftOrder, dto.DraftForm{})
	return &Validator{validate: v}
}

// Struct checks one form value.
func (v *Validator) Struct(form any) error {
	err := v.validate.Struct(form)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	out := &Error{Fields: make(map[string]string, len(fieldErrs))}
	for _, fe := range fieldErrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		out.Fields[fe.Field()] = rule
	}
	return out
}

// Validate lets the validator sit in the bus middleware chain. Messages that
// carry no form pass.
func (v *Validator) Validate(ctx context.Context, message any) error {
	carrier, ok := message.(FormCarrier)
	if !ok {
		return nil
	}
	return v.Struct(carrier.Form())
}

func jsonName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

func peakRateOrder(sl validator.StructLevel) {
	form := sl.Current().Interface().(dto.PeakRateForm)
	reportUnordered(sl, form.StartDate, form.EndDate, "end_date")
}

func draftOrder(sl validator.StructLevel) {
	form := sl.Current().Interface().(dto.DraftForm)
	reportUnordered(sl, form.CheckIn, form.CheckOut, "check_out")
}

// reportUnordered flags end when both keys parse and end is not after start.
func reportUnordered(sl validator.StructLevel, start, end, field string) {
	if start == "" || end == "" {
		return
	}
	from, err := datekey.Parse(start)
	if err != nil {
		return
	}
	to, err := datekey.Parse(end)
	if err != nil {
		return
	}
	if !from.Before(to) {
		sl.ReportError(end, field, field, "after_start", "")
	}
}
