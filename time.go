package voltjson

import "time"

// TimeFormat selects the wire form of a date/time property.
type TimeFormat uint8

const (
	// TimeRFC3339 writes a quoted RFC 3339 timestamp with nanoseconds and
	// offset. Reading accepts any RFC 3339 precision.
	TimeRFC3339 TimeFormat = iota
	// TimeUnixSeconds writes an integer count of seconds since the epoch.
	TimeUnixSeconds
	// TimeUnixMillis writes an integer count of milliseconds since the epoch.
	TimeUnixMillis
)

func (f TimeFormat) String() string {
	switch f {
	case TimeRFC3339:
		return "rfc3339"
	case TimeUnixSeconds:
		return "unix"
	case TimeUnixMillis:
		return "unix-millis"
	}
	return "unknown"
}

// Time converts time.Time in the given format. Epoch forms decode to UTC.
// The zero time counts as the default for ExcludeDefault.
func Time(f TimeFormat) Converter[time.Time] { return timeConverter{format: f} }

type timeConverter struct {
	format TimeFormat
}

func (timeConverter) CanWrite(v time.Time, p Policy) bool {
	return !p.Has(ExcludeDefault) || !v.IsZero()
}

func (t timeConverter) TryRead(c *Cursor, _ Policy) (time.Time, bool) {
	switch t.format {
	case TimeUnixSeconds:
		v, ok := c.ReadInt(64)
		if !ok {
			return time.Time{}, false
		}
		return time.Unix(v, 0).UTC(), true
	case TimeUnixMillis:
		v, ok := c.ReadInt(64)
		if !ok {
			return time.Time{}, false
		}
		return time.UnixMilli(v).UTC(), true
	}
	return c.ReadTime()
}

func (t timeConverter) TryWrite(b *Buffer, v time.Time, _ Policy) bool {
	switch t.format {
	case TimeUnixSeconds:
		WriteInt(b, v.Unix())
	case TimeUnixMillis:
		WriteInt(b, v.UnixMilli())
	default:
		if y := v.Year(); y < 0 || y > 9999 {
			return false
		}
		WriteTime(b, v)
	}
	return true
}

// Duration converts time.Duration as an integer count of units, e.g.
// Duration(time.Second) for a field carrying seconds.
func Duration(unit time.Duration) Converter[time.Duration] {
	if unit <= 0 {
		unit = 1
	}
	return durationConverter{unit: unit}
}

type durationConverter struct {
	unit time.Duration
}

func (durationConverter) CanWrite(v time.Duration, p Policy) bool { return valueCanWrite(v, p) }

func (d durationConverter) TryRead(c *Cursor, _ Policy) (time.Duration, bool) {
	start := c.Offset()
	v, ok := c.ReadInt(64)
	if !ok {
		return 0, false
	}
	out := time.Duration(v) * d.unit
	if d.unit != 1 && out/d.unit != time.Duration(v) {
		c.seek(start)
		return 0, c.Fail(KindMalformed)
	}
	return out, true
}

func (d durationConverter) TryWrite(b *Buffer, v time.Duration, _ Policy) bool {
	WriteInt(b, int64(v/d.unit))
	return true
}
