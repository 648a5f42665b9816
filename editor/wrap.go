package editor

import (
	"sort"
	"strings"

	"github.com/iw2rmb/inkwell/internal/grapheme"
)

// MeasureFunc returns the rendered width of text in canvas units.
type MeasureFunc func(text string) int

// DisplayLine is one soft-wrapped row of the display.
type DisplayLine struct {
	Text string
	// Source is the logical line this row belongs to.
	Source int
	// Len is the grapheme count of Text.
	Len int
}

// Layout is the wrapped form of a document. SourceMap[i] == Lines[i].Source
// and is non-decreasing, with the rows of one logical line contiguous.
type Layout struct {
	Lines     []DisplayLine
	SourceMap []int
}

// Len returns the number of display lines.
func (l Layout) Len() int { return len(l.Lines) }

// firstRow returns the first display row of logical line src, or -1.
func (l Layout) firstRow(src int) int {
	i := sort.SearchInts(l.SourceMap, src)
	if i >= len(l.SourceMap) || l.SourceMap[i] != src {
		return -1
	}
	return i
}

// Wrap soft-wraps every logical line to maxWidth. It is pure: the same input
// always yields the same layout.
func Wrap(lines []string, maxWidth int, measure MeasureFunc) Layout {
	out := Layout{
		Lines:     make([]DisplayLine, 0, len(lines)),
		SourceMap: make([]int, 0, len(lines)),
	}
	for src, line := range lines {
		for _, seg := range wrapSegments(line, maxWidth, measure) {
			out.Lines = append(out.Lines, DisplayLine{Text: seg.text, Source: src, Len: seg.n})
			out.SourceMap = append(out.SourceMap, src)
		}
	}
	if len(out.Lines) == 0 {
		out.Lines = append(out.Lines, DisplayLine{})
		out.SourceMap = append(out.SourceMap, 0)
	}
	return out
}

// WrapLine splits one logical line into display segments.
//
// Words are separated by single space clusters and packed greedily. A wrap
// consumes exactly one space, so strings.Join(segments, " ") == line. A word
// wider than maxWidth sits alone on its own segment and overflows.
func WrapLine(line string, maxWidth int, measure MeasureFunc) []string {
	segs := wrapSegments(line, maxWidth, measure)
	out := make([]string, len(segs))
	for i, seg := range segs {
		out[i] = seg.text
	}
	return out
}

// segment is wrapped text with its grapheme count.
type segment struct {
	text string
	n    int
}

func wrapSegments(line string, maxWidth int, measure MeasureFunc) []segment {
	if line == "" {
		return []segment{{}}
	}
	words := splitWords(grapheme.Split(line))
	out := make([]segment, 0, 1)
	current := words[0]
	for _, word := range words[1:] {
		candidate := segment{text: current.text + " " + word.text, n: current.n + 1 + word.n}
		if current.n == 0 || measure(candidate.text) <= maxWidth {
			current = candidate
			continue
		}
		out = append(out, current)
		current = word
	}
	return append(out, current)
}

// splitWords cuts clusters at every cluster that is exactly one space. A space
// carrying combining marks stays inside its word.
func splitWords(clusters []string) []segment {
	words := make([]segment, 0, 8)
	var sb strings.Builder
	n := 0
	for _, c := range clusters {
		if c == " " {
			words = append(words, segment{text: sb.String(), n: n})
			sb.Reset()
			n = 0
			continue
		}
		sb.WriteString(c)
		n++
	}
	return append(words, segment{text: sb.String(), n: n})
}
