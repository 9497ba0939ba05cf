package task

import (
	"strings"
	"time"
)

// StorageLayout is how timestamps are written to the data file. It is the
// first accepted layout, so a stored timestamp parses back unchanged.
const StorageLayout = "2006-01-02 1504"

// DisplayLayout renders timestamps for people.
const DisplayLayout = "Jan 2 2006, 3:04PM"

type dateLayout struct {
	layout   string
	dateOnly bool
}

// Order matters: the first layout that parses wins.
var dateLayouts = []dateLayout{
	{layout: "2006-01-02 1504"},            // 2019-12-02 1800
	{layout: "2006-01-02", dateOnly: true}, // 2019-12-02
	{layout: "2/1/2006 1504"},              // 2/12/2019 1800
	{layout: "2/1/2006", dateOnly: true},   // 2/12/2019
}

// ParseDateTime parses token against the accepted layouts. A date without a
// time of day resolves to 23:59 on that day. Results carry no zone meaning
// and are expressed in UTC.
func ParseDateTime(token string) (time.Time, error) {
	s := strings.TrimSpace(token)
	for _, l := range dateLayouts {
		t, err := time.Parse(l.layout, s)
		if err != nil {
			continue
		}
		if l.dateOnly {
			t = time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 0, 0, time.UTC)
		}
		return t, nil
	}
	return time.Time{}, &DateFormatError{Input: token}
}

// FormatStorage renders t in StorageLayout.
func FormatStorage(t time.Time) string {
	return t.Format(StorageLayout)
}

// FormatDisplay renders t in DisplayLayout.
func FormatDisplay(t time.Time) string {
	return t.Format(DisplayLayout)
}
