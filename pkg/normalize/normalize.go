package normalize

import "strings"

type state int

const (
	scanningForKey state = iota
	accumulatingValue
)

// Result is the outcome of normalizing one document.
type Result struct {
	// Text is the normalized document.
	Text string

	// Entries lists every entry found, in document order.
	Entries []Entry

	// MarkersStripped counts removed trailing markers, including the one
	// taken from the document tail.
	MarkersStripped int
}

// Merged returns the number of entries whose value was collapsed from
// several lines.
func (r Result) Merged() int {
	n := 0
	for _, e := range r.Entries {
		if e.Continued() {
			n++
		}
	}
	return n
}

// Normalize returns text with every multi-line entry collapsed onto one line
// and trailing markers removed. Text without entries is returned unchanged.
func Normalize(text string) string {
	return Apply(text).Text
}

// Apply normalizes text and reports what it changed.
func Apply(text string) Result {
	if text == "" {
		return Result{}
	}

	body, trailingNewline := strings.CutSuffix(text, "\n")
	lines := strings.Split(body, "\n")

	n := &normalizer{out: make([]string, 0, len(lines))}
	for _, line := range lines {
		n.feed(line)
	}
	n.flush()

	out := strings.Join(n.out, "\n")
	if trailingNewline {
		out += "\n"
	}

	res := Result{Entries: n.entries}
	for _, e := range n.entries {
		if e.MarkerStripped {
			res.MarkersStripped++
		}
	}

	// The last entry is already stripped above; a marker can still be left
	// on a pass-through final line.
	if trimmed, ok := trimMarker(out); ok {
		out = trimmed
		res.MarkersStripped++
	}
	res.Text = out
	return res
}

type normalizer struct {
	state   state
	out     []string
	entries []Entry

	key  string
	raw  []string
	crlf bool
}

func (n *normalizer) feed(line string) {
	if key, rest, ok := splitKey(line); ok {
		n.flush()
		if !startsValue(rest) {
			n.out = append(n.out, line)
			return
		}
		n.open(key, rest)
		return
	}

	if n.state == accumulatingValue {
		if isComment(line) || isBlank(line) {
			n.flush()
			n.out = append(n.out, line)
			return
		}
		n.raw = append(n.raw, line)
		n.crlf = strings.HasSuffix(line, "\r")
		return
	}

	n.out = append(n.out, line)
}

func (n *normalizer) open(key, rest string) {
	n.state = accumulatingValue
	n.key = key
	n.raw = append(n.raw[:0], rest)
	n.crlf = strings.HasSuffix(rest, "\r")
}

// flush emits the open entry, if any, and returns to scanningForKey.
func (n *normalizer) flush() {
	if n.state != accumulatingValue {
		return
	}
	raw := strings.Join(n.raw, "\n")
	value, stripped := cleanValue(raw)
	e := Entry{
		Key:            n.key,
		Raw:            raw,
		Value:          value,
		Lines:          len(n.raw),
		MarkerStripped: stripped,
	}
	n.entries = append(n.entries, e)

	line := e.Line()
	if n.crlf {
		line += "\r"
	}
	n.out = append(n.out, line)

	n.state = scanningForKey
	n.key = ""
	n.raw = n.raw[:0]
	n.crlf = false
}
