package wire

import "time"

// wireTimeLayout matches the original server's date format: RFC 3339 in UTC
// with millisecond precision and a trailing "Z".
const wireTimeLayout = "2006-01-02T15:04:05.000Z"

// Time wraps time.Time so it marshals/unmarshals using the wire's fixed
// millisecond-precision RFC 3339 layout instead of time.Time's default
// nanosecond layout.
type Time struct {
	time.Time
}

// Now returns the current instant in UTC, truncated to millisecond
// precision so repeated serialization round-trips are stable.
func Now() Time {
	return Time{time.Now().UTC().Truncate(time.Millisecond)}
}

func (t Time) MarshalJSON() ([]byte, error) {
	buf := make([]byte, 0, len(wireTimeLayout)+2)
	buf = append(buf, '"')
	buf = t.UTC().AppendFormat(buf, wireTimeLayout)
	buf = append(buf, '"')
	return buf, nil
}

func (t *Time) UnmarshalJSON(data []byte) error {
	if len(data) < 2 {
		return &time.ParseError{Value: string(data), Layout: wireTimeLayout}
	}
	parsed, err := time.Parse(`"`+time.RFC3339Nano+`"`, string(data))
	if err != nil {
		return err
	}
	t.Time = parsed.UTC()
	return nil
}
