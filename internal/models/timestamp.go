// Package models - timestamp.go defines Timestamp, the single canonical time representation
// used by every entity. The remote service has emitted creation times as RFC 3339 strings,
// epoch milliseconds, and Firestore-style {_seconds,_nanoseconds} objects; all of them are
// normalized here on ingress so nothing downstream branches on shape. Values that match
// none of them decode as absent.
package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

// Timestamp is a UTC instant. The zero value means "not provided".
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps t, normalized to UTC
func NewTimestamp(t time.Time) Timestamp {
	if t.IsZero() {
		return Timestamp{}
	}
	return Timestamp{Time: t.UTC()}
}

// firestoreTimestamp covers both the admin SDK (_seconds) and the REST (seconds) encodings
type firestoreTimestamp struct {
	Seconds          *int64 `json:"seconds"`
	Nanoseconds      int64  `json:"nanoseconds"`
	AdminSeconds     *int64 `json:"_seconds"`
	AdminNanoseconds int64  `json:"_nanoseconds"`
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC1123,
	time.RFC1123Z,
	// Date.prototype.toString without the trailing zone name
	"Mon Jan 02 2006 15:04:05 GMT-0700",
}

// UnmarshalJSON accepts null, date strings, epoch milliseconds, and Firestore objects.
// A value in any other shape decodes to the zero Timestamp so that one unreadable
// entity never fails the whole response.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	*ts = parseTimestamp(bytes.TrimSpace(data))
	return nil
}

func parseTimestamp(data []byte) Timestamp {
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return Timestamp{}
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return unreadable(data, err)
		}
		return parseString(s)
	case '{':
		var fs firestoreTimestamp
		if err := json.Unmarshal(data, &fs); err != nil {
			return unreadable(data, err)
		}
		switch {
		case fs.AdminSeconds != nil:
			return NewTimestamp(time.Unix(*fs.AdminSeconds, fs.AdminNanoseconds))
		case fs.Seconds != nil:
			return NewTimestamp(time.Unix(*fs.Seconds, fs.Nanoseconds))
		default:
			return unreadable(data, errors.New("object has no seconds field"))
		}
	default:
		ms, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return unreadable(data, err)
		}
		return NewTimestamp(time.UnixMilli(int64(ms)))
	}
}

func parseString(s string) Timestamp {
	s = strings.TrimSpace(s)
	if s == "" {
		return Timestamp{}
	}
	// "Tue Jan 02 2024 10:00:00 GMT+0530 (India Standard Time)"
	if i := strings.Index(s, " ("); i > 0 && strings.HasSuffix(s, ")") {
		s = s[:i]
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return NewTimestamp(t)
		}
	}
	return unreadable([]byte(s), errors.New("unrecognised format"))
}

func unreadable(data []byte, err error) Timestamp {
	slog.Debug("unreadable timestamp, treating as absent", "value", string(data), "error", err)
	return Timestamp{}
}

// MarshalJSON always writes RFC 3339 (or null for the zero value)
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(ts.UTC().Format(time.RFC3339Nano))
}
