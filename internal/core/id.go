package core

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	isoSeconds = "2006-01-02T15:04:05"
	isoMicros  = "2006-01-02T15:04:05.000000"
	compactID  = "20060102150405"
)

// NewID generates a UUID v7 (time-ordered).
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to v4 if v7 fails (should not happen).
		return uuid.New().String()
	}
	return id.String()
}

// ISOTimestamp renders t in UTC as ISO-8601 without a zone suffix. The
// fractional part is omitted when the microsecond component is zero.
func ISOTimestamp(t time.Time) string {
	t = t.UTC()
	if t.Nanosecond()/1000 == 0 {
		return t.Format(isoSeconds)
	}
	return t.Format(isoMicros)
}

// NewAuditID returns "audit-" followed by t in UTC as YYYYMMDDHHMMSSffffff.
func NewAuditID(t time.Time) string {
	t = t.UTC()
	return fmt.Sprintf("audit-%s%06d", t.Format(compactID), t.Nanosecond()/1000)
}

// Annotate stamps the event with a timestamp and an id. Each value takes
// its own reading of clock.
func (e *Event) Annotate(clock func() time.Time) (string, error) {
	if err := e.Set(FieldTimestamp, ISOTimestamp(clock())); err != nil {
		return "", err
	}
	id := NewAuditID(clock())
	if err := e.Set(FieldID, id); err != nil {
		return "", err
	}
	return id, nil
}
