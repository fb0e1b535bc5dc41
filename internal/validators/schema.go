package validators

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/httperr"
)

// Type is the JSON shape a field must have.
type Type string

const (
	String  Type = "string"
	Number  Type = "number"
	Integer Type = "integer"
	Boolean Type = "boolean"
	Array   Type = "array"
	Object  Type = "object"
	Date    Type = "date"  // YYYY-MM-DD
	Clock   Type = "clock" // HH:MM
	Email   Type = "email"
	Phone   Type = "phone"
)

// Field is one rule of a Schema. Zero-valued constraints are not checked.
type Field struct {
	Name     string
	Required bool
	Type     Type

	MinLen int
	MaxLen int
	Min    *float64
	Max    *float64

	// MultipleOf applies to numbers.
	MultipleOf int
	OneOf      []string
	Pattern    *regexp.Regexp

	// Items describes array elements; Fields describes object members.
	Items  *Field
	Fields Schema
}

// Schema is the set of rules for one request body.
type Schema []Field

func Ptr(f float64) *float64 { return &f }

var (
	phonePattern = regexp.MustCompile(`^0[0-9]{9}$`)
	clockPattern = regexp.MustCompile(`^\d{1,2}:\d{2}$`)

	validate     *validator.Validate
	validateOnce sync.Once
)

func engine() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate
}

// Check validates body against s and returns every violation at once.
func (s Schema) Check(body map[string]any) []string {
	var out []string
	s.check("", body, &out)
	return out
}

// Validate returns a validation_error carrying all violations, or nil.
func (s Schema) Validate(body map[string]any) error {
	if msgs := s.Check(body); len(msgs) > 0 {
		return httperr.Validation(msgs)
	}
	return nil
}

func (s Schema) check(prefix string, body map[string]any, out *[]string) {
	for _, f := range s {
		name := prefix + f.Name
		v, present := body[f.Name]
		if !present || v == nil {
			if f.Required {
				*out = append(*out, fmt.Sprintf("%s is required", name))
			}
			continue
		}
		f.checkValue(name, v, out)
	}
}

func (f Field) checkValue(name string, v any, out *[]string) {
	add := func(format string, args ...any) {
		*out = append(*out, name+" "+fmt.Sprintf(format, args...))
	}

	switch f.Type {
	case String, Date, Clock, Email, Phone:
		str, ok := v.(string)
		if !ok {
			add("must be a string")
			return
		}
		f.checkString(str, add)

	case Number, Integer:
		n, ok := v.(float64)
		if !ok {
			add("must be a number")
			return
		}
		if f.Type == Integer && n != math.Trunc(n) {
			add("must be an integer")
			return
		}
		if f.Min != nil && n < *f.Min {
			add("must be at least %v", *f.Min)
		}
		if f.Max != nil && n > *f.Max {
			add("must be at most %v", *f.Max)
		}
		if f.MultipleOf > 0 && math.Mod(n, float64(f.MultipleOf)) != 0 {
			add("must be a multiple of %d", f.MultipleOf)
		}

	case Boolean:
		if _, ok := v.(bool); !ok {
			add("must be a boolean")
		}

	case Array:
		items, ok := v.([]any)
		if !ok {
			add("must be an array")
			return
		}
		if f.MinLen > 0 && len(items) < f.MinLen {
			add("must contain at least %d item(s)", f.MinLen)
		}
		if f.Items != nil {
			for i, it := range items {
				elem := fmt.Sprintf("%s[%d]", name, i)
				if it == nil {
					*out = append(*out, elem+" must not be null")
					continue
				}
				f.Items.checkValue(elem, it, out)
			}
		}

	case Object:
		obj, ok := v.(map[string]any)
		if !ok {
			add("must be an object")
			return
		}
		f.Fields.check(name+".", obj, out)
	}
}

func (f Field) checkString(s string, add func(string, ...any)) {
	trimmed := strings.TrimSpace(s)
	if f.Required && trimmed == "" {
		add("must not be empty")
		return
	}

	switch f.Type {
	case Email:
		if engine().Var(s, "email") != nil {
			add("must be a valid email address")
		}
	case Phone:
		if !phonePattern.MatchString(s) {
			add("must be a valid phone number (10 digits starting with 0)")
		}
	case Date:
		if engine().Var(s, "datetime=2006-01-02") != nil {
			add("must be a date in YYYY-MM-DD format")
		}
	case Clock:
		if !clockPattern.MatchString(s) {
			add("must be a time in HH:MM format")
		}
	}

	n := len([]rune(trimmed))
	if f.MinLen > 0 && f.MaxLen > 0 && (n < f.MinLen || n > f.MaxLen) {
		add("must be between %d and %d characters", f.MinLen, f.MaxLen)
	} else if f.MinLen > 0 && n < f.MinLen {
		add("must be at least %d characters", f.MinLen)
	} else if f.MaxLen > 0 && n > f.MaxLen {
		add("must be at most %d characters", f.MaxLen)
	}

	if len(f.OneOf) > 0 && !contains(f.OneOf, s) {
		add("must be one of: %s", strings.Join(f.OneOf, ", "))
	}
	if f.Pattern != nil && !f.Pattern.MatchString(s) {
		add("has an invalid format")
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
