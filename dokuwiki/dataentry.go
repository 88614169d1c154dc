package dokuwiki

import (
	"regexp"
	"strings"
)

// Dataentry is the parsed key-value content of a data plugin block
// (https://www.dokuwiki.org/plugin:data) embedded in page text. Field
// order is preserved; within a record, the first occurrence of a key
// wins and later duplicates are ignored.
type Dataentry struct {
	keys   []string
	fields map[string]string
}

const (
	dataentryMarker = "---- dataentry"
	dataentryDelim  = "----"
)

var commentRE = regexp.MustCompile(`#.*$`)

// NewDataentry returns an empty record.
func NewDataentry() *Dataentry {
	return &Dataentry{fields: map[string]string{}}
}

// Set adds a field. A key already present keeps its first value.
func (d *Dataentry) Set(key, value string) {
	if _, ok := d.fields[key]; ok {
		return
	}
	d.keys = append(d.keys, key)
	d.fields[key] = value
}

// Get returns the value of a field.
func (d *Dataentry) Get(key string) (string, bool) {
	v, ok := d.fields[key]
	return v, ok
}

// Keys returns the field names in insertion order.
func (d *Dataentry) Keys() []string {
	return append([]string(nil), d.keys...)
}

// Len returns the number of fields.
func (d *Dataentry) Len() int {
	return len(d.keys)
}

// Map returns the fields as a plain map, discarding order.
func (d *Dataentry) Map() map[string]string {
	m := make(map[string]string, len(d.fields))
	for k, v := range d.fields {
		m[k] = v
	}
	return m
}

// ParseDataentry extracts the dataentry block from page content. The
// block starts at a line whose stripped content begins with the
// "---- dataentry" marker and ends at the first subsequent line that is
// exactly "----". Field lines are key:value pairs; the value loses any
// trailing #-comment and surrounding whitespace. A value containing a
// literal # is truncated at the first #; lossy, but kept for
// compatibility with existing records.
//
// ErrNoDataentry is returned when no start marker is present.
func ParseDataentry(content string) (*Dataentry, error) {
	entry := NewDataentry()
	found := false
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), dataentryMarker) {
			found = true
			continue
		}
		if line == dataentryDelim {
			break
		}
		if !found {
			continue
		}

		key, rest, _ := strings.Cut(line, ":")
		key = strings.TrimSpace(key)
		value := strings.TrimSpace(commentRE.ReplaceAllString(rest, ""))
		entry.Set(key, value)
	}

	if !found {
		return nil, ErrNoDataentry
	}
	return entry, nil
}

// GenDataentry renders a dataentry block of the given record type,
// emitting fields in the record's insertion order. It is the inverse of
// ParseDataentry for records whose values contain neither ':' nor '#'.
func GenDataentry(name string, entry *Dataentry) string {
	var b strings.Builder
	b.WriteString(dataentryMarker)
	b.WriteString(" ")
	b.WriteString(name)
	b.WriteString(" ----\n")
	for _, key := range entry.keys {
		b.WriteString(key)
		b.WriteString(":")
		b.WriteString(entry.fields[key])
		b.WriteString("\n")
	}
	b.WriteString(dataentryDelim)
	return b.String()
}

// StripDataentry removes the first dataentry block from content and
// returns the remaining text. Content without a complete block (start
// marker through closing "----") is returned unchanged.
func StripDataentry(content string) string {
	lines := strings.Split(content, "\n")

	start := -1
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), dataentryMarker) {
			start = i
			break
		}
	}
	if start == -1 {
		return content
	}

	end := -1
	for i := start + 1; i < len(lines); i++ {
		if lines[i] == dataentryDelim {
			end = i
			break
		}
	}
	if end == -1 {
		return content
	}

	remaining := append(append([]string{}, lines[:start]...), lines[end+1:]...)
	return strings.Join(remaining, "\n")
}
