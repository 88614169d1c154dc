package dokuwiki

import (
	"math"
	"time"

	"github.com/wikitools/go-dokuwiki/xmlrpc"
)

// Timestamp layouts DokuWiki has shipped over the years. Older servers
// emit the compact form, newer ones an extended form with a trailing
// +0000 zone; the string length tells them apart.
const (
	dateLayoutExtended = "2006-01-02T15:04:05"
	dateLayoutCompact  = "20060102T15:04:05"

	extendedLen = 24
)

// Date converts a transport timestamp into a time.Time, detecting the
// server's format by string length.
func Date(dt xmlrpc.DateTime) (time.Time, error) {
	s := string(dt)
	if len(s) == extendedLen {
		t, err := time.Parse(dateLayoutExtended, s[:len(dateLayoutExtended)])
		if err != nil {
			return time.Time{}, &Error{Message: "bad timestamp " + s}
		}
		return t, nil
	}
	t, err := time.Parse(dateLayoutCompact, s)
	if err != nil {
		return time.Time{}, &Error{Message: "bad timestamp " + s}
	}
	return t, nil
}

// UTCToLocal shifts a UTC timestamp into local time by the host's
// current UTC offset, rounded to whole hours. The offset is re-derived
// on every call, so it follows any seasonal adjustment in effect at the
// moment of the call rather than when the timestamp was produced.
func UTCToLocal(t time.Time) time.Time {
	_, offset := time.Now().Zone()
	hours := int(math.Round(float64(offset) / 3600))
	return t.Add(time.Duration(hours) * time.Hour)
}
