// Package filetime converts between Go's time.Time and the Windows
// FILETIME encoding used by CFB directory entries: a 64-bit count of
// 100-nanosecond ticks since 1601-01-01 00:00:00 UTC.
//
// The "current time" source is a single replaceable function, the way
// spec'd: tests swap it out for a fixed value so timestamp assertions are
// deterministic.
package filetime

import "time"

// epochDeltaSeconds is the number of seconds between the FILETIME epoch
// (1601-01-01) and the Unix epoch (1970-01-01).
const epochDeltaSeconds = 11644473600

const ticksPerSecond = 10_000_000

// Now is the injectable clock used wherever the engine needs "the current
// time" (creation_time/modified_time stamping). Tests overwrite this to a
// fixed value for deterministic assertions.
var Now = func() time.Time { return time.Now() }

// FromTime converts t into a Windows FILETIME tick count.
func FromTime(t time.Time) uint64 {
	seconds := t.Unix() + epochDeltaSeconds
	ticks := seconds * ticksPerSecond
	ticks += int64(t.Nanosecond() / 100)
	if ticks < 0 {
		return 0
	}
	return uint64(ticks)
}

// ToTime converts a Windows FILETIME tick count into a time.Time in UTC.
func ToTime(ticks uint64) time.Time {
	seconds := int64(ticks/ticksPerSecond) - epochDeltaSeconds
	nanos := int64(ticks%ticksPerSecond) * 100
	return time.Unix(seconds, nanos).UTC()
}

// NowTicks returns the current time, per Now, as a FILETIME tick count.
func NowTicks() uint64 { return FromTime(Now()) }
