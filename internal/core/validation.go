package core

// validation.go checks submitted forms before they reach the database.
//
// Validation happens at two levels:
//  1. Field rules: struct tags evaluated by the validator (required, numeric, format)
//  2. Store checks: one existence query per uniqueness or reference rule
//
// Every failing rule contributes one message. Messages keep a stable order:
// field rules in struct order, then store checks in declaration order.

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/JonMunkholm/coursereg/internal/database"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgtype"
)

const dateLayout = "2006-01-02"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if label := f.Tag.Get("label"); label != "" {
			return label
		}
		return f.Name
	})
	return v
}

// checkFields runs the struct tag rules and returns one message per failing field.
func checkFields(in any) ValidationErrors {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return ValidationErrors{err.Error()}
	}

	msgs := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return msgs
}

func fieldMessage(fe validator.FieldError) string {
	label := fe.Field()
	switch fe.Tag() {
	case "required":
		return label + " is required."
	case "number":
		return label + " must be a whole number."
	case "email":
		return label + " must be a valid email address."
	case "datetime":
		return label + " must be a date in YYYY-MM-DD format."
	case "max":
		return fmt.Sprintf("%s must be at most %s characters.", label, fe.Param())
	default:
		return label + " is invalid."
	}
}

// uniqueCheck is one "value already taken" rule.
type uniqueCheck struct {
	value  string
	exists func(context.Context, database.UniqueCheckParams) (bool, error)
	msg    string
}

// referenceCheck is one "referenced row must exist" rule.
type referenceCheck struct {
	id     int32
	exists func(context.Context, int32) (bool, error)
	msg    string
}

// storeChecks runs each rule as its own query. Empty values are skipped;
// the field rules already report them.
func storeChecks(ctx context.Context, excludeID int32, uniques []uniqueCheck, refs []referenceCheck) (ValidationErrors, error) {
	var msgs ValidationErrors

	for _, c := range uniques {
		if c.value == "" {
			continue
		}
		taken, err := c.exists(ctx, database.UniqueCheckParams{Value: c.value, ExcludeID: excludeID})
		if err != nil {
			return nil, fmt.Errorf("uniqueness check: %w", err)
		}
		if taken {
			msgs = append(msgs, c.msg)
		}
	}

	for _, c := range refs {
		if c.id == 0 {
			continue
		}
		found, err := c.exists(ctx, c.id)
		if err != nil {
			return nil, fmt.Errorf("reference check: %w", err)
		}
		if !found {
			msgs = append(msgs, c.msg)
		}
	}

	return msgs, nil
}

// finish merges field and store messages into a single error, or nil.
func finish(field, store ValidationErrors) error {
	msgs := append(field, store...)
	if len(msgs) == 0 {
		return nil
	}
	return msgs
}

// parseOptionalInt converts a validated digit string. Empty means NULL.
func parseOptionalInt(s string) (pgtype.Int4, error) {
	if s == "" {
		return pgtype.Int4{}, nil
	}
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return pgtype.Int4{}, err
	}
	return pgtype.Int4{Int32: int32(n), Valid: true}, nil
}

// parseID converts a validated id field. Empty or malformed yields 0.
func parseID(s string) int32 {
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil || n < 0 {
		return 0
	}
	return int32(n)
}

func parseDate(s string) (pgtype.Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return pgtype.Date{}, err
	}
	return pgtype.Date{Time: t, Valid: true}, nil
}

func optionalText(s string) pgtype.Text {
	if s == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: s, Valid: true}
}

func trim(fields ...*string) {
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
	}
}
