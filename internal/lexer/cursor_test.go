package lexer

import (
	"testing"

	"lox/internal/source"
)

func createFile(content string) *source.File {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.lox", []byte(content))
	return fs.Get(id)
}

// TestSequentialReading проверяет последовательное чтение: "a\nb" → a, \n, b, сентинель
func TestSequentialReading(t *testing.T) {
	file := createFile("a\nb")
	cursor := NewCursor(file)

	for _, want := range []byte{'a', '\n', 'b'} {
		if cursor.EOF() {
			t.Fatalf("unexpected EOF before %q", want)
		}
		if got := cursor.Peek(); got != want {
			t.Fatalf("Peek() = %q, want %q", got, want)
		}
		if got := cursor.Bump(); got != want {
			t.Fatalf("Bump() = %q, want %q", got, want)
		}
	}

	if !cursor.EOF() {
		t.Fatal("Expected EOF on the sentinel")
	}
	if cursor.Bump() != source.Sentinel {
		t.Fatal("Bump at EOF must return the sentinel")
	}
	if cursor.Off != 3 {
		t.Fatalf("sentinel must not be consumed, Off = %d", cursor.Off)
	}
}

func TestEmbeddedSentinelStopsCursor(t *testing.T) {
	file := createFile("a\x00b")
	cursor := NewCursor(file)
	cursor.Bump()
	if !cursor.EOF() {
		t.Fatal("embedded NUL must end input")
	}
	if cursor.PeekNext() != source.Sentinel {
		t.Fatal("PeekNext must not look past the sentinel")
	}
}

func TestMarkResetEat(t *testing.T) {
	file := createFile("!=")
	cursor := NewCursor(file)
	m := cursor.Mark()
	cursor.Bump()
	if !cursor.Eat('=') {
		t.Fatal("Eat('=') = false")
	}
	if cursor.Eat('=') {
		t.Fatal("Eat at EOF must fail")
	}
	if sp := cursor.SpanFrom(m); sp.Start != 0 || sp.End != 2 {
		t.Fatalf("SpanFrom = %v", sp)
	}
	cursor.Reset(m)
	if cursor.Peek() != '!' {
		t.Fatal("Reset did not rewind")
	}
}

func TestCursorWithoutSentinel(t *testing.T) {
	file := &source.File{Content: []byte("x")}
	cursor := NewCursor(file)
	cursor.Bump()
	if !cursor.EOF() || cursor.Peek() != source.Sentinel {
		t.Fatal("end of buffer must behave like the sentinel")
	}
}
