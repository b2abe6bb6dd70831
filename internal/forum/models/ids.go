package models

import (
	"time"

	"github.com/dmitrijs2005/forumdesign/internal/common"
	"github.com/dmitrijs2005/forumdesign/internal/validate"
	"github.com/google/uuid"
)

// now is a test seam for the default creation time.
var now = time.Now

func requireID(field string, id uuid.UUID) error {
	if id == uuid.Nil {
		return common.NewValidationError(field, "is missing")
	}
	return nil
}

// creationTime returns t checked for range, or the current time when t is
// zero. The result is in UTC at microsecond precision, the precision of the
// store.
func creationTime(field string, t time.Time) (time.Time, error) {
	if t.IsZero() {
		t = now()
	}
	v, err := validate.Timestamp(field, t)
	if err != nil {
		return time.Time{}, err
	}
	return v.UTC().Truncate(time.Microsecond), nil
}
