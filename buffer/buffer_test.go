package buffer

import (
	"slices"
	"testing"
)

func TestNew_EmptyTextHasOneLine(t *testing.T) {
	b := New("", Options{})
	if got := b.LineCount(); got != 1 {
		t.Fatalf("line count: got %d, want %d", got, 1)
	}
	if got := b.Cursor(); got != (Pos{}) {
		t.Fatalf("cursor: got %v, want zero", got)
	}
}

func TestNew_CursorAtEnd(t *testing.T) {
	b := New("first\nsecond line", Options{CursorAtEnd: true})
	if got, want := b.Cursor(), (Pos{Row: 1, Col: 11}); got != want {
		t.Fatalf("cursor: got %v, want %v", got, want)
	}
}

func TestText_RoundTripsLines(t *testing.T) {
	text := "alpha\n\n  beta gamma"
	b := New(text, Options{})
	if got := b.Text(); got != text {
		t.Fatalf("text: got %q, want %q", got, text)
	}
	if got, want := b.LineCount(), 3; got != want {
		t.Fatalf("line count: got %d, want %d", got, want)
	}
	if got, want := b.Line(2), "  beta gamma"; got != want {
		t.Fatalf("line 2: got %q, want %q", got, want)
	}
	if got := b.Line(9); got != "" {
		t.Fatalf("line out of range: got %q, want empty", got)
	}
}

func TestNew_TrailingNewlineEndsLastLine(t *testing.T) {
	b := New("alpha\nbeta\n", Options{CursorAtEnd: true})
	if got, want := b.LineCount(), 2; got != want {
		t.Fatalf("line count: got %d, want %d", got, want)
	}
	if got, want := b.Cursor(), (Pos{Row: 1, Col: 4}); got != want {
		t.Fatalf("cursor: got %v, want %v", got, want)
	}
	if got, want := New("alpha\n\n", Options{}).LineCount(), 2; got != want {
		t.Fatalf("blank last line: got %d lines, want %d", got, want)
	}
	if got, want := New("\n", Options{}).LineCount(), 1; got != want {
		t.Fatalf("lone newline: got %d lines, want %d", got, want)
	}
}

func TestSplitText(t *testing.T) {
	cases := map[string][]string{
		"":           {""},
		"a":          {"a"},
		"a\n":        {"a"},
		"a\r\nb\r\n": {"a", "b"},
		"a\n\n":      {"a", ""},
	}
	for in, want := range cases {
		if got := SplitText(in); !slices.Equal(got, want) {
			t.Fatalf("SplitText(%q): got %q, want %q", in, got, want)
		}
	}
}

func TestNew_StripsCarriageReturns(t *testing.T) {
	b := New("one\r\ntwo", Options{})
	if got, want := b.Text(), "one\ntwo"; got != want {
		t.Fatalf("text: got %q, want %q", got, want)
	}
}

func TestFromLines(t *testing.T) {
	b := FromLines([]string{"a", "", "c"}, Options{CursorAtEnd: true})
	if got, want := b.Text(), "a\n\nc"; got != want {
		t.Fatalf("text: got %q, want %q", got, want)
	}
	if got, want := b.Cursor(), (Pos{Row: 2, Col: 1}); got != want {
		t.Fatalf("cursor: got %v, want %v", got, want)
	}
}

func TestLines_ReturnsCopy(t *testing.T) {
	b := New("x\ny", Options{})
	lines := b.Lines()
	lines[0] = "changed"
	if got := b.Line(0); got != "x" {
		t.Fatalf("buffer mutated through Lines: got %q", got)
	}
}

func TestSetCursor_ClampsAndVersions(t *testing.T) {
	b := New("abc\nde", Options{})
	v := b.Version()

	b.SetCursor(Pos{Row: 1, Col: 99})
	if got, want := b.Cursor(), (Pos{Row: 1, Col: 2}); got != want {
		t.Fatalf("cursor: got %v, want %v", got, want)
	}
	if got := b.Version(); got != v+1 {
		t.Fatalf("version: got %d, want %d", got, v+1)
	}

	b.SetCursor(Pos{Row: 1, Col: 2})
	if got := b.Version(); got != v+1 {
		t.Fatalf("no-op SetCursor bumped version: got %d", got)
	}
}

func TestWordCount(t *testing.T) {
	b := New("The quick  brown\n\n\tfox jumps", Options{})
	if got, want := b.WordCount(), 5; got != want {
		t.Fatalf("word count: got %d, want %d", got, want)
	}
	if got := New("   \n ", Options{}).WordCount(); got != 0 {
		t.Fatalf("blank word count: got %d, want 0", got)
	}
}
