package rope

import "testing"

func TestEmpty(t *testing.T) {
	r := Empty()
	if r.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", r.Len())
	}
	if r.LineCount() != 1 {
		t.Fatalf("LineCount() = %d, want 1", r.LineCount())
	}
	if r.Text() != "" {
		t.Fatalf("Text() = %q, want empty", r.Text())
	}
}

func TestFromStringRoundTrip(t *testing.T) {
	cases := []string{
		"",
		"hello",
		"hello\nworld",
		"a\nb\nc\n",
		"\n\n\n",
	}
	for _, s := range cases {
		r := FromString(s)
		if got := r.Text(); got != s {
			t.Errorf("FromString(%q).Text() = %q", s, got)
		}
		if r.Len() != len(s) {
			t.Errorf("FromString(%q).Len() = %d, want %d", s, r.Len(), len(s))
		}
	}
}

func TestLineCount(t *testing.T) {
	cases := []struct {
		text string
		want int
	}{
		{"", 1},
		{"a", 1},
		{"a\n", 2},
		{"a\nb", 2},
		{"a\nb\n", 3},
		{"\n\n", 3},
	}
	for _, c := range cases {
		if got := FromString(c.text).LineCount(); got != c.want {
			t.Errorf("FromString(%q).LineCount() = %d, want %d", c.text, got, c.want)
		}
	}
}

func TestLine(t *testing.T) {
	r := FromString("alpha\nbeta\ngamma")
	cases := []struct {
		row  int
		want string
	}{
		{0, "alpha"},
		{1, "beta"},
		{2, "gamma"},
		{3, ""},
		{-1, ""},
	}
	for _, c := range cases {
		if got := r.Line(c.row); got != c.want {
			t.Errorf("Line(%d) = %q, want %q", c.row, got, c.want)
		}
	}
}

func TestSlice(t *testing.T) {
	r := FromString("hello world")
	cases := []struct {
		start, end int
		want       string
	}{
		{0, 5, "hello"},
		{6, 11, "world"},
		{0, 11, "hello world"},
		{0, 0, ""},
		{-5, 100, "hello world"},
		{8, 3, ""},
	}
	for _, c := range cases {
		if got := r.Slice(c.start, c.end); got != c.want {
			t.Errorf("Slice(%d,%d) = %q, want %q", c.start, c.end, got, c.want)
		}
	}
}

func TestInsert(t *testing.T) {
	r := FromString("hello world")
	r = r.Insert(5, ",")
	if got, want := r.Text(), "hello, world"; got != want {
		t.Fatalf("Text() = %q, want %q", got, want)
	}

	r2 := FromString("ab")
	r2 = r2.Insert(0, "X").Insert(3, "Y")
	if got, want := r2.Text(), "XabY"; got != want {
		t.Fatalf("Text() = %q, want %q", got, want)
	}
}

func TestInsertImmutable(t *testing.T) {
	r := FromString("abc")
	r2 := r.Insert(1, "X")
	if r.Text() != "abc" {
		t.Fatalf("receiver mutated: %q", r.Text())
	}
	if r2.Text() != "aXbc" {
		t.Fatalf("Text() = %q, want aXbc", r2.Text())
	}
}

func TestDelete(t *testing.T) {
	r := FromString("hello world")
	r = r.Delete(5, 11)
	if got, want := r.Text(), "hello"; got != want {
		t.Fatalf("Text() = %q, want %q", got, want)
	}
}

func TestReplace(t *testing.T) {
	r := FromString("hello world")
	r = r.Replace(6, 11, "there")
	if got, want := r.Text(), "hello there"; got != want {
		t.Fatalf("Text() = %q, want %q", got, want)
	}
}

func TestInsertAcrossLargeChunks(t *testing.T) {
	big := make([]byte, 5000)
	for i := range big {
		big[i] = 'a'
		if i%50 == 49 {
			big[i] = '\n'
		}
	}
	r := FromString(string(big))
	r = r.Insert(2500, "MARK")
	text := r.Text()
	if text[2500:2504] != "MARK" {
		t.Fatalf("inserted text not found at expected offset")
	}
	if len(text) != len(big)+4 {
		t.Fatalf("Len() = %d, want %d", len(text), len(big)+4)
	}
}

func TestOffsetPointRoundTrip(t *testing.T) {
	r := FromString("alpha\nbeta\ngamma\n")
	for offset := 0; offset <= r.Len(); offset++ {
		p := r.OffsetToPoint(offset)
		back := r.PointToOffset(p)
		if back != offset {
			t.Errorf("offset %d -> point %+v -> offset %d", offset, p, back)
		}
	}
}

func TestPointToOffsetClamps(t *testing.T) {
	r := FromString("ab\ncd")
	if got, want := r.PointToOffset(Point{Line: 0, Column: 100}), 2; got != want {
		t.Errorf("PointToOffset clamp column = %d, want %d", got, want)
	}
	if got, want := r.PointToOffset(Point{Line: 100, Column: 0}), 3; got != want {
		t.Errorf("PointToOffset clamp line = %d, want %d", got, want)
	}
}
