// Package timex holds time helpers used by configuration and serialization.
package timex

import (
	"encoding/json"
	"fmt"
	"time"
)

// Duration is a time.Duration that unmarshals from either a Go duration
// string ("30s", "1m") or an integer count of nanoseconds.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch x := v.(type) {
	case float64:
		d.Duration = time.Duration(x)
		return nil
	case string:
		parsed, err := time.ParseDuration(x)
		if err != nil {
			return err
		}
		d.Duration = parsed
		return nil
	default:
		return fmt.Errorf("invalid duration: %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnixMillis renders t as milliseconds since the epoch, rounded from its
// microsecond value.
// Halves round up.
func UnixMillis(t time.Time) int64 {
	us := t.UnixMicro()
	q, r := us/1000, us%1000
	if r < 0 {
		q, r = q-1, r+1000
	}
	if r >= 500 {
		q++
	}
	return q
}
