package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"lox/internal/diag"
	"lox/internal/source"
)

func prettyString(t *testing.T, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) string {
	t.Helper()
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, opts)
	return buf.String()
}

func TestPrettySnippetAndCaret(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("main.lox", []byte("1 + @;\n"))

	bag := diag.NewBag(4)
	bag.Add(diag.NewError(diag.LexUnknownChar, source.Span{File: id, Start: 4, End: 5}, "Unexpected character.").WithLine(1))

	got := prettyString(t, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	want := "main.lox:1:5: ERROR LEX1001: Unexpected character.\n" +
		"   1 | 1 + @;\n" +
		"     |     ^\n"
	if got != want {
		t.Fatalf("Pretty mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestPrettyUnderlinesWholeLexeme(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("s.lox", []byte("\t\"abc\nmore"))

	bag := diag.NewBag(4)
	bag.Add(diag.NewError(diag.LexUnterminatedString, source.Span{File: id, Start: 1, End: 10}, "Unterminated String"))

	got := prettyString(t, bag, fs, PrettyOpts{PathMode: PathModeBasename, TabWidth: 2})
	lines := strings.Split(got, "\n")
	if len(lines) < 3 {
		t.Fatalf("short output %q", got)
	}
	if lines[1] != "   1 |   \"abc" {
		t.Errorf("source line = %q", lines[1])
	}
	// только первая строка span'а
	if lines[2] != "     |   ^~~~" {
		t.Errorf("caret line = %q", lines[2])
	}
}

func TestPrettyPathModes(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("/home/user/project/src/test.lox", []byte("@"))
	fs.SetBaseDir("/home/user/project")

	bag := diag.NewBag(4)
	bag.Add(diag.NewError(diag.LexUnknownChar, source.Span{File: id, Start: 0, End: 1}, "Unexpected character."))

	tests := []struct {
		name   string
		mode   PathMode
		prefix string
	}{
		{"absolute", PathModeAbsolute, "/home/user/project/src/test.lox:1:1:"},
		{"relative", PathModeRelative, "src/test.lox:1:1:"},
		{"basename", PathModeBasename, "test.lox:1:1:"},
		{"auto keeps short paths", PathModeAuto, "/home/user/project/src/test.lox:1:1:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := prettyString(t, bag, fs, PrettyOpts{PathMode: tt.mode})
			if !strings.HasPrefix(got, tt.prefix) {
				t.Errorf("expected prefix %q, got:\n%s", tt.prefix, got)
			}
		})
	}
}

func TestPrettyWithoutFile(t *testing.T) {
	bag := diag.NewBag(4)
	bag.Add(diag.NewError(diag.SynExpectExpression, source.Span{File: 7}, "Expect expression.").WithLine(3))

	got := prettyString(t, bag, source.NewFileSet(), PrettyOpts{})
	if got != "ERROR [line 3] Error SYN2001: Expect expression.\n" {
		t.Fatalf("got %q", got)
	}
}

func TestPrettyNotes(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("n.lox", []byte("1 2"))
	sp := source.Span{File: id, Start: 2, End: 3}

	bag := diag.NewBag(4)
	bag.Add(diag.NewError(diag.SynExpectEnd, sp, "Expect end of expression.").WithNote(sp, "found '2'"))

	if got := prettyString(t, bag, fs, PrettyOpts{}); strings.Contains(got, "note:") {
		t.Fatalf("notes must be hidden by default:\n%s", got)
	}
	got := prettyString(t, bag, fs, PrettyOpts{ShowNotes: true})
	if !strings.HasSuffix(got, "  note: found '2'\n") {
		t.Fatalf("missing note:\n%s", got)
	}
}

func TestPrettyColor(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("c.lox", []byte("@"))
	bag := diag.NewBag(4)
	bag.Add(diag.NewError(diag.LexUnknownChar, source.Span{File: id, Start: 0, End: 1}, "Unexpected character."))

	if got := prettyString(t, bag, fs, PrettyOpts{Color: true}); !strings.Contains(got, "\x1b[") {
		t.Fatalf("expected ANSI escapes, got %q", got)
	}
	if got := prettyString(t, bag, fs, PrettyOpts{Color: false}); strings.Contains(got, "\x1b[") {
		t.Fatalf("unexpected ANSI escapes in %q", got)
	}
}
