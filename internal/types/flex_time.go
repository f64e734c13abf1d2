package types

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Layouts tried, in order, for timestamps that carry no zone offset.
var zonelessLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// FlexTime is a timestamp that can be unmarshaled from RFC 3339 or from an ISO 8601
// datetime without an offset. Datetimes without an offset are read as UTC.
type FlexTime struct {
	time.Time
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (f *FlexTime) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("FlexTime: unexpected type, expected string")
	}
	s = strings.TrimSpace(s)

	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		f.Time = t
		return nil
	}
	for _, layout := range zonelessLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			f.Time = t
			return nil
		}
	}

	return fmt.Errorf("FlexTime: invalid datetime %q", s)
}

// MarshalJSON implements the json.Marshaler interface.
func (f FlexTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Time)
}

// OptionalTime converts an optional FlexTime into an optional UTC time.
func OptionalTime(f *FlexTime) *time.Time {
	if f == nil {
		return nil
	}
	t := f.UTC()
	return &t
}
