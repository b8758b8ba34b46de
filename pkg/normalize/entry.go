package normalize

import "strings"

// Marker is the stray character some exporters append to values.
const Marker = '%'

// Entry is one logical KEY=VALUE unit, possibly spread over several
// physical lines before normalization.
type Entry struct {
	// Key is the identifier in front of '=' (without the '=').
	Key string

	// Raw is the value text as found, continuation lines joined with '\n'.
	Raw string

	// Value is Raw with line breaks removed, trimmed, and one trailing
	// marker dropped.
	Value string

	// Lines is the number of physical lines the entry occupied.
	Lines int

	// MarkerStripped reports whether a trailing marker was removed from Value.
	MarkerStripped bool
}

// Continued reports whether the entry spanned more than one physical line.
func (e Entry) Continued() bool {
	return e.Lines > 1
}

// Line returns the entry as a single KEY=VALUE line without terminator.
func (e Entry) Line() string {
	return e.Key + "=" + e.Value
}

// cleanValue removes every line break from raw, trims surrounding
// whitespace and drops at most one trailing marker.
func cleanValue(raw string) (string, bool) {
	v := strings.NewReplacer("\r", "", "\n", "").Replace(raw)
	v = strings.TrimSpace(v)
	return trimMarker(v)
}

func trimMarker(s string) (string, bool) {
	if strings.HasSuffix(s, string(Marker)) {
		return s[:len(s)-1], true
	}
	return s, false
}

// splitKey reports whether line starts with an identifier followed by '='
// and returns the identifier and the text after '='.
func splitKey(line string) (key, rest string, ok bool) {
	i := 0
	for i < len(line) && isKeyByte(line[i]) {
		i++
	}
	if i == 0 || i >= len(line) || line[i] != '=' {
		return "", "", false
	}
	return line[:i], line[i+1:], true
}

func isKeyByte(c byte) bool {
	return c == '_' ||
		('0' <= c && c <= '9') ||
		('a' <= c && c <= 'z') ||
		('A' <= c && c <= 'Z')
}

// startsValue reports whether the text after '=' may open an entry. Empty
// values and values beginning with '#' never do.
func startsValue(rest string) bool {
	rest = strings.TrimSuffix(rest, "\r")
	return rest != "" && rest[0] != '#'
}

// isComment reports whether line is a column-0 comment.
func isComment(line string) bool {
	return strings.HasPrefix(line, "#")
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}
