// Package request decodes and validates request input for the HTTP handlers.
package request

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/taka-daredemo/JICA/internal/apperr"
)

var validate = func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report JSON names in messages.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	return v
}()

// DecodeJSON decodes the body into dst and checks its validate tags.
func DecodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.Validation("invalid request body: " + err.Error())
	}

	return Validate(dst)
}

func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperr.Validation(err.Error())
	}

	return apperr.Validation(fieldMessage(verrs[0]))
}

func fieldMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	case "gte", "min":
		return e.Field() + " must be at least " + e.Param()
	case "lte", "max":
		return e.Field() + " must be at most " + e.Param()
	case "email":
		return e.Field() + " must be a valid email"
	case "dive":
		return e.Field() + " is invalid"
	default:
		return e.Field() + " is invalid"
	}
}

// UUIDParam reads a chi URL parameter as a UUID.
func UUIDParam(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, apperr.Validation("invalid " + name)
	}

	return id, nil
}

// Date reads an optional query date. Both YYYY-MM-DD (taken in loc) and
// RFC 3339 timestamps are accepted.
func Date(q url.Values, key string, loc *time.Location) (*time.Time, error) {
	s := strings.TrimSpace(q.Get(key))
	if s == "" {
		return nil, nil
	}

	if t, err := time.ParseInLocation(time.DateOnly, s, loc); err == nil {
		return &t, nil
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, apperr.Validation("invalid " + key + ": " + s)
	}

	return &t, nil
}

// EndDate reads an optional inclusive upper bound. A YYYY-MM-DD value covers
// that whole day in loc; RFC 3339 timestamps are used as given.
func EndDate(q url.Values, key string, loc *time.Location) (*time.Time, error) {
	d, err := Date(q, key, loc)
	if d == nil || err != nil {
		return d, err
	}

	if _, err := time.Parse(time.DateOnly, strings.TrimSpace(q.Get(key))); err == nil {
		end := d.AddDate(0, 0, 1).Add(-time.Nanosecond)
		return &end, nil
	}

	return d, nil
}

// Int reads an optional integer query parameter.
func Int(q url.Values, key string) (*int, error) {
	s := strings.TrimSpace(q.Get(key))
	if s == "" {
		return nil, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, apperr.Validation("invalid " + key + ": " + s)
	}

	return &n, nil
}

// Time is a JSON date that accepts YYYY-MM-DD as well as RFC 3339.
// Date-only values are midnight UTC.
type Time struct {
	time.Time
}

func (t *Time) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	if s == "" {
		return nil
	}

	if d, err := time.Parse(time.DateOnly, s); err == nil {
		t.Time = d
		return nil
	}

	parsed, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return errors.New("invalid date: " + s)
	}

	t.Time = parsed

	return nil
}

// Ptr returns nil for an unset value.
func (t *Time) Ptr() *time.Time {
	if t == nil || t.IsZero() {
		return nil
	}

	return &t.Time
}
