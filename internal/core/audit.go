package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"unicode/utf8"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

const (
	FieldAction    = "action"
	FieldActor     = "actor"
	FieldResource  = "resource"
	FieldTimestamp = "timestamp"
	FieldID        = "id"
)

// RequiredFields lists the keys every submitted event must carry, in the
// order they are reported when absent.
var RequiredFields = []string{FieldAction, FieldActor, FieldResource}

var ErrInvalidJSON = errors.New("invalid json")

// Event is a submitted audit event. Fields keep submission order so that
// unknown keys pass through untouched.
type Event struct {
	fields *orderedmap.OrderedMap[string, json.RawMessage]
}

func NewEvent() *Event {
	return &Event{fields: orderedmap.New[string, json.RawMessage]()}
}

// DecodeEvent parses a request body into an Event. A body that is valid JSON
// but not an object yields an Event with no fields. Repeated keys keep their
// first position and their last value.
func DecodeEvent(body []byte) (*Event, error) {
	if !utf8.Valid(body) {
		return nil, fmt.Errorf("%w: body is not utf-8", ErrInvalidJSON)
	}
	if !json.Valid(body) {
		return nil, ErrInvalidJSON
	}

	ev := NewEvent()
	trimmed := bytes.TrimLeft(body, " \t\r\n")
	if trimmed[0] != '{' {
		return ev, nil
	}
	if err := ev.fields.UnmarshalJSON(trimmed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return ev, nil
}

// Has reports whether key is present, regardless of its value.
func (e *Event) Has(key string) bool {
	_, ok := e.fields.Get(key)
	return ok
}

// Get returns the raw JSON value stored under key.
func (e *Event) Get(key string) (json.RawMessage, bool) {
	return e.fields.Get(key)
}

// Set stores v under key. An existing key keeps its position.
func (e *Event) Set(key string, v interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	e.fields.Set(key, b)
	return nil
}

// Keys returns the field names in order.
func (e *Event) Keys() []string {
	keys := make([]string, 0, e.fields.Len())
	for pair := e.fields.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Missing returns the required fields absent from the event.
func (e *Event) Missing() []string {
	var missing []string
	for _, k := range RequiredFields {
		if !e.Has(k) {
			missing = append(missing, k)
		}
	}
	return missing
}

func (e *Event) MarshalJSON() ([]byte, error) {
	return e.fields.MarshalJSON()
}
