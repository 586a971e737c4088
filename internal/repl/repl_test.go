package repl

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"lox/internal/driver"
)

func runLines(t *testing.T, input string) (string, []error) {
	t.Helper()
	var out bytes.Buffer
	var errs []error
	sess := driver.NewSession(driver.Options{Out: &out})
	err := Run(context.Background(), sess, Options{
		In:      strings.NewReader(input),
		Out:     &out,
		OnError: func(err error) { errs = append(errs, err) },
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return out.String(), errs
}

func TestReplEvaluatesEachLine(t *testing.T) {
	got, errs := runLines(t, "1.2\n\"hi\";\n")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors %v", errs)
	}
	if want := ">value 1.2\n>value hi\n>\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestReplContinuesAfterError(t *testing.T) {
	got, errs := runLines(t, "@\n1 2\ntrue\n")
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %v", errs)
	}
	if !strings.Contains(errs[0].Error(), "LEX1001") || !strings.Contains(errs[1].Error(), "SYN2002") {
		t.Errorf("unexpected errors %v", errs)
	}
	if want := ">>>value true\n>\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestReplBlankLineIsNil(t *testing.T) {
	got, _ := runLines(t, "\n")
	if want := ">value nil\n>\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestReplLastLineWithoutNewline(t *testing.T) {
	got, _ := runLines(t, "nil")
	if want := ">value nil\n>\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestReplDefaultErrorOutput(t *testing.T) {
	var out bytes.Buffer
	sess := driver.NewSession(driver.Options{Out: &out})
	if err := Run(context.Background(), sess, Options{In: strings.NewReader("@\n"), Out: &out}); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out.String(), ">[line 1] Error LEX1001: Unexpected character.\n") {
		t.Fatalf("got %q", out.String())
	}
}

func TestReplCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sess := driver.NewSession(driver.Options{Out: &bytes.Buffer{}})
	if err := Run(ctx, sess, Options{In: strings.NewReader("1\n"), Out: &bytes.Buffer{}}); err == nil {
		t.Fatal("expected context error")
	}
}
