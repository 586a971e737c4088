package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"off", LevelOff, false},
		{"", LevelOff, false},
		{"PHASE", LevelPhase, false},
		{"detail", LevelDetail, false},
		{"debug", LevelDebug, false},
		{"verbose", LevelOff, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) err = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestShouldEmit(t *testing.T) {
	if LevelPhase.ShouldEmit(ScopeFile) {
		t.Error("phase must not emit file scope")
	}
	if !LevelDetail.ShouldEmit(ScopeFile) || LevelDetail.ShouldEmit(ScopeStep) {
		t.Error("detail emits file scope but not steps")
	}
	if !LevelDebug.ShouldEmit(ScopeStep) {
		t.Error("debug emits everything")
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("ndjson"); err != nil || f != FormatNDJSON {
		t.Fatalf("ParseFormat(ndjson) = %v, %v", f, err)
	}
	if _, err := ParseFormat("chrome"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestNewOffIsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil {
		t.Fatal(err)
	}
	if tr.Enabled() {
		t.Fatal("off tracer must be disabled")
	}
	span := Begin(tr, ScopePass, "lex", 0)
	if span.ID() != 0 || span.End("") != 0 {
		t.Fatal("nop span must be inert")
	}
}

func TestStreamTextNesting(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Format: FormatText, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}

	root := Begin(tr, ScopeDriver, "run", 0)
	child := Begin(tr, ScopePass, "compile", root.ID())
	child.WithExtra("slots", "3").WithExtra("consts", "1").End("ok")
	Begin(tr, ScopeFile, "hidden", root.ID()).End("")
	root.End("")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), buf.String())
	}
	if !strings.HasSuffix(lines[0], "] → run") {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], "]   → compile") {
		t.Errorf("line 1 = %q", lines[1])
	}
	if !strings.HasSuffix(lines[2], "]   ← compile (ok) {consts=1, slots=3}") {
		t.Errorf("line 2 = %q", lines[2])
	}
	if !strings.HasSuffix(lines[3], "] ← run") {
		t.Errorf("line 3 = %q", lines[3])
	}
}

func TestStreamNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatNDJSON)
	Point(tr, ScopeStep, "step", "OP_RETURN", 7)

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid json %q: %v", buf.String(), err)
	}
	if got["kind"] != "point" || got["scope"] != "step" || got["detail"] != "OP_RETURN" {
		t.Fatalf("unexpected event %v", got)
	}
}

func TestContextPropagation(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Fatal("empty context must yield Nop")
	}
	tr := NewStreamTracer(&bytes.Buffer{}, LevelPhase, FormatText)
	ctx := WithTracer(context.Background(), tr)
	if FromContext(ctx) != Tracer(tr) {
		t.Fatal("tracer not propagated")
	}
	ctx = WithSpanContext(ctx, SpanContext{SpanID: 9})
	if CurrentSpan(ctx).SpanID != 9 {
		t.Fatal("span context not propagated")
	}
}

func TestContextWithSpanNestsPasses(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatNDJSON)
	root := Begin(tr, ScopeDriver, "run", 0)
	ctx := ContextWithSpan(context.Background(), root)
	if ParentID(ctx) != root.ID() {
		t.Fatalf("ParentID = %d, want %d", ParentID(ctx), root.ID())
	}

	disabled := Begin(Nop, ScopePass, "compile", ParentID(ctx))
	if got := ContextWithSpan(ctx, disabled); ParentID(got) != root.ID() {
		t.Fatal("disabled span must not replace the parent")
	}
	if ParentID(context.Background()) != 0 {
		t.Fatal("empty context must yield a root parent")
	}
}
