// Package validate holds the field checks shared by the forum entities.
// Every helper takes a plain value and returns the normalized value or a
// *common.ValidationError naming the offending field.
package validate

import (
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/forumdesign/internal/common"
	"github.com/google/uuid"
)

// Timestamp layouts accepted in string form, tried in order.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05",
}

// ID accepts a uuid.UUID, its 16-byte binary form or its string form.
func ID(field string, v any) (uuid.UUID, error) {
	switch x := v.(type) {
	case uuid.UUID:
		return x, nil
	case *uuid.UUID:
		if x == nil {
			return uuid.Nil, common.NewValidationError(field, "is missing")
		}
		return *x, nil
	case []byte:
		id, err := uuid.FromBytes(x)
		if err != nil {
			return uuid.Nil, common.NewValidationError(field, "is not a valid uuid: %v", err)
		}
		return id, nil
	case string:
		id, err := uuid.Parse(strings.TrimSpace(x))
		if err != nil {
			return uuid.Nil, common.NewValidationError(field, "is not a valid uuid: %v", err)
		}
		return id, nil
	default:
		return uuid.Nil, common.NewValidationError(field, "unsupported type %T", v)
	}
}

// OptionalID is ID for references that may be absent. A nil value, a nil
// pointer or an invalid uuid.NullUUID yields an invalid NullUUID.
func OptionalID(field string, v any) (uuid.NullUUID, error) {
	switch x := v.(type) {
	case nil:
		return uuid.NullUUID{}, nil
	case *uuid.UUID:
		if x == nil {
			return uuid.NullUUID{}, nil
		}
	case uuid.NullUUID:
		return x, nil
	}
	id, err := ID(field, v)
	if err != nil {
		return uuid.NullUUID{}, err
	}
	return uuid.NullUUID{UUID: id, Valid: true}, nil
}

// Timestamp accepts a time.Time or its string form. The year must be
// within 1..9999.
func Timestamp(field string, v any) (time.Time, error) {
	var ts time.Time
	switch x := v.(type) {
	case time.Time:
		ts = x
	case *time.Time:
		if x == nil {
			return time.Time{}, common.NewValidationError(field, "is missing")
		}
		ts = *x
	case string:
		s := strings.TrimSpace(x)
		parsed := false
		for _, layout := range timestampLayouts {
			t, err := time.Parse(layout, s)
			if err == nil {
				ts, parsed = t, true
				break
			}
		}
		if !parsed {
			return time.Time{}, common.NewValidationError(field, "is not a valid timestamp: %q", s)
		}
	default:
		return time.Time{}, common.NewValidationError(field, "unsupported type %T", v)
	}

	if y := ts.Year(); y < 1 || y > 9999 {
		return time.Time{}, common.NewValidationError(field, "year %d out of range", y)
	}
	return ts, nil
}

// Email trims s and requires a single bare address of at most maxLen bytes.
func Email(field, s string, maxLen int) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", common.NewValidationError(field, "is empty")
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return "", common.NewValidationError(field, "is not a valid email address")
	}
	if len(s) > maxLen {
		return "", common.NewValidationError(field, "is longer than %d characters", maxLen)
	}
	return s, nil
}

// Hex trims and lower-cases s and requires exactly n hexadecimal digits.
func Hex(field, s string, n int) (string, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || strings.IndexFunc(s, isNotHex) >= 0 {
		return "", common.NewValidationError(field, "is not in hexadecimal form")
	}
	if len(s) != n {
		return "", common.NewValidationError(field, "must contain %d characters, got %d", n, len(s))
	}
	return s, nil
}

func isNotHex(r rune) bool {
	return !(r >= '0' && r <= '9' || r >= 'a' && r <= 'f')
}

// Text trims and sanitizes s and requires a non-empty result. When maxLen is
// positive the result may hold at most maxLen characters.
func Text(field, s string, maxLen int) (string, error) {
	s = strings.TrimSpace(Sanitize(strings.TrimSpace(s)))
	if s == "" {
		return "", common.NewValidationError(field, "is empty or insecure")
	}
	if n := utf8.RuneCountInString(s); maxLen > 0 && n > maxLen {
		return "", common.NewValidationError(field, "is longer than %d characters", maxLen)
	}
	return s, nil
}
