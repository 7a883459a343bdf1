package schema

import (
	"net/url"
	"regexp"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/gookit/validate"
)

type Format string

const (
	FormatNone      Format = ""
	FormatUUID      Format = "uuid"
	FormatEmail     Format = "email"
	FormatURL       Format = "url"
	FormatTimestamp Format = "timestamp"
)

// FieldRule declares the constraints of one field. Zero values mean "no constraint".
// Bounds on a list field apply to the number of items; ItemMinLen/ItemMaxLen
// bound each item.
type FieldRule struct {
	Field      string
	Required   bool
	MinLen     int
	MaxLen     int
	Min        *float64
	Enum       []string
	Pattern    string
	Format     Format
	ItemMinLen int
	ItemMaxLen int
	Message    string
}

// Schema is a data-driven rule table evaluated by Check.
type Schema struct {
	Name  string
	Rules []FieldRule
}

type constraint struct {
	name    string
	check   func(val any) bool
	message string
}

func Float(v float64) *float64 {
	return &v
}

func (r FieldRule) msg(fallback string) string {
	if r.Message != "" {
		return r.Message
	}
	return fallback
}

func (r FieldRule) constraints() []constraint {
	var cs []constraint
	add := func(kind string, check func(val any) bool, message string) {
		cs = append(cs, constraint{name: r.Field + kind, check: check, message: message})
	}

	if r.MinLen > 0 {
		add("MinLen", func(val any) bool { return length(val) >= r.MinLen }, r.msg("is too short"))
	}
	if r.MaxLen > 0 {
		add("MaxLen", func(val any) bool { return length(val) <= r.MaxLen }, r.msg("is too long"))
	}
	if r.Min != nil {
		floor := *r.Min
		add("NumMin", func(val any) bool { return number(val) >= floor }, r.msg("must not be negative"))
	}
	if len(r.Enum) > 0 {
		add("OneOf", func(val any) bool {
			s, ok := val.(string)
			return ok && slices.Contains(r.Enum, s)
		}, r.msg("must be one of "+strings.Join(r.Enum, ", ")))
	}
	if r.Pattern != "" {
		re := regexp.MustCompile(r.Pattern)
		add("Matches", func(val any) bool {
			s, ok := val.(string)
			return ok && re.MatchString(s)
		}, r.msg("contains invalid characters"))
	}
	if r.ItemMinLen > 0 || r.ItemMaxLen > 0 {
		add("Items", func(val any) bool {
			items, ok := val.([]string)
			if !ok {
				return false
			}
			for _, it := range items {
				n := utf8.RuneCountInString(it)
				if n < r.ItemMinLen || (r.ItemMaxLen > 0 && n > r.ItemMaxLen) {
					return false
				}
			}
			return true
		}, r.msg("has an item of invalid length"))
	}
	switch r.Format {
	case FormatUUID:
		add("UUID", func(val any) bool {
			s, ok := val.(string)
			if !ok {
				return false
			}
			u, err := uuid.Parse(s)
			return err == nil && u.String() == s
		}, r.msg("must be a valid UUID"))
	case FormatEmail:
		add("Email", func(val any) bool {
			s, ok := val.(string)
			return ok && validate.IsEmail(s)
		}, r.msg("must be a valid email address"))
	case FormatURL:
		add("URL", func(val any) bool {
			s, ok := val.(string)
			return ok && isAllowedURL(s)
		}, r.msg("must be a valid URL"))
	case FormatTimestamp:
		add("Timestamp", func(val any) bool {
			s, ok := val.(string)
			if !ok {
				return false
			}
			_, err := time.Parse(time.RFC3339Nano, s)
			return err == nil
		}, r.msg("must be an ISO-8601 timestamp"))
	}
	return cs
}

// Check evaluates every rule against fields and returns the failures in rule
// order. Absent or empty optional values skip every constraint but "required".
func (s Schema) Check(fields map[string]any) *ValidationErrors {
	v := validate.Map(fields)
	v.StopOnError = false

	type bound struct {
		rule FieldRule
		cs   []constraint
	}
	table := make([]bound, 0, len(s.Rules))
	for _, r := range s.Rules {
		cs := r.constraints()
		if r.Required {
			v.StringRule(r.Field, "required")
		}
		for _, c := range cs {
			v.AddValidator(c.name, c.check)
			v.StringRule(r.Field, c.name)
		}
		table = append(table, bound{rule: r, cs: cs})
	}

	errs := &ValidationErrors{}
	if v.Validate() {
		return errs
	}
	for _, b := range table {
		failed := v.Errors[b.rule.Field]
		if len(failed) == 0 {
			continue
		}
		if _, ok := failed["required"]; ok {
			errs.Add(b.rule.Field, b.rule.msg("is required"))
			continue
		}
		for _, c := range b.cs {
			if _, ok := failed[c.name]; ok {
				errs.Add(b.rule.Field, c.message)
			}
		}
	}
	return errs
}

func length(val any) int {
	switch x := val.(type) {
	case string:
		return utf8.RuneCountInString(x)
	case []string:
		return len(x)
	case map[string]string:
		return len(x)
	default:
		return 0
	}
}

func number(val any) float64 {
	switch x := val.(type) {
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case float64:
		return x
	default:
		return -1
	}
}

func isAllowedURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	switch u.Scheme {
	case "http", "https":
		return u.Host != ""
	case "mailto":
		return u.Opaque != "" || u.Path != ""
	default:
		return false
	}
}

// formatTime renders a timestamp for rule evaluation; zero means absent.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}
