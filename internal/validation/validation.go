package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MsgInvalidBody is returned when the body is not a single JSON object.
const MsgInvalidBody = "Request body must be a JSON object"

// Error is a client-caused request problem. It maps to HTTP 400 and its
// message is returned to the caller verbatim.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Errorf builds a validation Error.
func Errorf(format string, args ...any) *Error {
	return &Error{Message: fmt.Sprintf(format, args...)}
}

// IsValidationError reports whether err is, or wraps, a validation Error.
func IsValidationError(err error) bool {
	var verr *Error
	return errors.As(err, &verr)
}

var validate = newValidator()

// newValidator reports fields by their JSON name so messages match the wire format.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// DecodeJSON decodes body into out, a pointer to a struct, and checks its
// `validate` tags. Keys must match the struct's JSON names exactly; a missing
// required field is reported before any unexpected key.
func DecodeJSON(body []byte, out any) error {
	dec := json.NewDecoder(bytes.NewReader(body))

	var raw map[string]json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return &Error{Message: MsgInvalidBody}
	}
	if _, err := dec.Token(); err != io.EOF {
		return &Error{Message: MsgInvalidBody}
	}

	known := jsonFieldNames(out)
	fields := make(map[string]json.RawMessage, len(raw))
	var unexpected []string
	for key, value := range raw {
		if _, ok := known[key]; ok {
			fields[key] = value
			continue
		}
		unexpected = append(unexpected, key)
	}

	// encoding/json folds case when matching keys, so only exact matches are
	// handed to it.
	filtered, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(filtered, out); err != nil {
		return decodeError(err)
	}
	if err := Struct(out); err != nil {
		return err
	}

	if len(unexpected) > 0 {
		slices.Sort(unexpected)
		return Errorf("Unexpected field '%s' in the request data", unexpected[0])
	}
	return nil
}

// jsonFieldNames returns the JSON keys of the struct out points to.
func jsonFieldNames(out any) map[string]struct{} {
	names := make(map[string]struct{})

	t := reflect.TypeOf(out)
	if t == nil || t.Kind() != reflect.Pointer || t.Elem().Kind() != reflect.Struct {
		return names
	}
	for _, fld := range reflect.VisibleFields(t.Elem()) {
		if !fld.IsExported() || fld.Anonymous {
			continue
		}
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		switch name {
		case "-":
			continue
		case "":
			name = fld.Name
		}
		names[name] = struct{}{}
	}
	return names
}

func decodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return Errorf("'%s' must be a %s", typeErr.Field, typeErr.Type)
	}
	return &Error{Message: MsgInvalidBody}
}

// Struct validates v's `validate` tags and converts the first failure into
// a validation Error.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	fe := fieldErrs[0]
	if fe.Tag() == "required" {
		return Errorf("Missing '%s' in the request data", fe.Field())
	}
	return Errorf("Invalid '%s' in the request data", fe.Field())
}
