package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// localDateTimeLayout is the offset-less form clients send, read as UTC.
const localDateTimeLayout = "2006-01-02T15:04:05.999999999"

// Timestamp is a wire time that accepts RFC 3339 and offset-less local
// date-times. It encodes as RFC 3339.
type Timestamp time.Time

func (t Timestamp) Time() time.Time { return time.Time(t) }

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(t))
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("timestamp must be a string: %s", data)
	}
	parsed, err := ParseTimestamp(raw)
	if err != nil {
		return err
	}
	*t = Timestamp(parsed)
	return nil
}

// ParseTimestamp reads RFC 3339 or yyyy-MM-ddTHH:mm:ss[.fff] (UTC).
func ParseTimestamp(raw string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return ts.UTC(), nil
	}
	if ts, err := time.ParseInLocation(localDateTimeLayout, raw, time.UTC); err == nil {
		return ts, nil
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q: expected yyyy-MM-ddTHH:mm:ss with optional offset", raw)
}
