package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTerminate(t *testing.T) {
	in := []byte("abc")
	out := Terminate(in)
	if string(out) != "abc\x00" {
		t.Fatalf("Terminate = %q", out)
	}
	if len(in) != 3 {
		t.Fatal("Terminate must not modify its input")
	}
	if got := Terminate(out); len(got) != 4 {
		t.Fatalf("double terminate: %q", got)
	}
	if got := Terminate(nil); len(got) != 1 || got[0] != Sentinel {
		t.Fatalf("empty buffer: %q", got)
	}
}

func TestNormalizeCRLF(t *testing.T) {
	normalized, changed := normalizeCRLF([]byte("a\r\nb\r\nc\r"))
	if !changed {
		t.Error("Expected CRLF normalization to be detected")
	}
	if string(normalized) != "a\nb\nc\r" {
		t.Errorf("unexpected result %q", normalized)
	}
	if _, changed := normalizeCRLF([]byte("plain")); changed {
		t.Error("no CR present, nothing should change")
	}
}

func TestRemoveBOM(t *testing.T) {
	withoutBOM, hadBOM := removeBOM([]byte{0xEF, 0xBB, 0xBF, 'x'})
	if !hadBOM || string(withoutBOM) != "x" {
		t.Fatalf("got %q, %v", withoutBOM, hadBOM)
	}
	if _, hadBOM := removeBOM([]byte("xy")); hadBOM {
		t.Fatal("short buffer has no BOM")
	}
}

func TestNormalizeNFC(t *testing.T) {
	// "e" + combining acute accent
	out, changed := normalizeNFC([]byte("e\u0301"))
	if !changed {
		t.Fatal("expected NFC normalisation")
	}
	if string(out) != "\u00e9" {
		t.Fatalf("got %q", out)
	}
	if _, changed := normalizeNFC([]byte("ascii")); changed {
		t.Fatal("ASCII is already NFC")
	}
}

func TestRelativePathOutsideBaseFallsBackToAbsolute(t *testing.T) {
	tmp := t.TempDir()
	baseDir := filepath.Join(tmp, "base")
	otherDir := filepath.Join(tmp, "other")
	for _, d := range []string{baseDir, otherDir} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
	}

	target := filepath.Join(otherDir, "file.lox")
	got, err := RelativePath(target, baseDir)
	if err != nil {
		t.Fatalf("RelativePath returned error: %v", err)
	}
	if want := normalizePath(target); got != want {
		t.Fatalf("expected absolute fallback %q, got %q", want, got)
	}
}

func TestRelativePathInsideBaseStaysRelative(t *testing.T) {
	tmp := t.TempDir()
	target := filepath.Join(tmp, "nested", "file.lox")

	got, err := RelativePath(target, tmp)
	if err != nil {
		t.Fatalf("RelativePath returned error: %v", err)
	}
	if got != "nested/file.lox" {
		t.Fatalf("got %q", got)
	}
}
