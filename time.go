package quorum

import (
	"encoding/json"
	"time"

	"github.com/iov-one/quorum/errors"
)

// UnixTime is a point in time with seconds precision, stored as POSIX time.
// Proposal windows are expressed with it so that the encoded form is a plain
// integer. Zero has the special meaning of "not set" in most places.
type UnixTime int64

// Time returns a time.Time structure that represents the same moment in time.
func (t UnixTime) Time() time.Time {
	return time.Unix(int64(t), 0).UTC()
}

// IsZero returns true if this time represents a zero value.
func (t UnixTime) IsZero() bool {
	return t == 0
}

// Add modifies this UNIX time by given duration. This is compatible with
// time.Time.Add method.
func (t UnixTime) Add(d time.Duration) UnixTime {
	return t + UnixTime(d/time.Second)
}

// AsUnixTime converts given Time structure into its UNIX time representation.
func AsUnixTime(t time.Time) UnixTime {
	return UnixTime(t.Unix())
}

// ParseUnixTime accepts either a number of seconds or an RFC3339 formatted
// timestamp.
func ParseUnixTime(s string) (UnixTime, error) {
	var t UnixTime
	raw := []byte(s)
	if _, err := time.Parse(time.RFC3339, s); err == nil {
		raw, _ = json.Marshal(s)
	}
	if err := t.UnmarshalJSON(raw); err != nil {
		return 0, err
	}
	return t, nil
}

// UnmarshalJSON supports unmarshaling both as time.Time and from a number.
// A number is the canonical representation, but a string timestamp is more
// convenient in genesis files.
func (t *UnixTime) UnmarshalJSON(raw []byte) error {
	var unix int64
	if err := json.Unmarshal(raw, &unix); err == nil {
		if unix < 0 {
			return errors.Wrap(errors.ErrInvalidInput, "time before epoch")
		}
		*t = UnixTime(unix)
		return nil
	}

	var stdtime time.Time
	if err := json.Unmarshal(raw, &stdtime); err == nil {
		unix := AsUnixTime(stdtime)
		if unix < 0 {
			return errors.Wrap(errors.ErrInvalidInput, "time before epoch")
		}
		*t = unix
		return nil
	}

	return errors.Wrap(errors.ErrInvalidInput, "invalid time format")
}

// Validate returns an error if this time value is invalid.
func (t UnixTime) Validate() error {
	if t < 0 {
		return errors.Wrap(errors.ErrInvalidState, "negative value")
	}
	return nil
}

func (t UnixTime) String() string {
	if t == 0 {
		return "unbounded"
	}
	return t.Time().Format(time.RFC3339)
}
