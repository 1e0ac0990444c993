package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestE2ESphere exercises the full pipeline: CSG source -> scene -> octree
// -> mesh -> OBJ file, the same path the binary itself takes.
func TestE2ESphere(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "scene.csg")
	outPath := filepath.Join(dir, "scene.obj")

	src := "material m;\nobject ball = sphere(10);\nbuild ball m;\n"
	if err := os.WriteFile(inPath, []byte(src), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	code := run([]string{inPath, outPath})
	if code != exitOK {
		t.Fatalf("expected exit code %d, got %d", exitOK, code)
	}

	out, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("expected an output file to be written: %v", err)
	}
	if !strings.Contains(string(out), "v ") {
		t.Fatalf("expected output to contain vertex lines, got:\n%s", out)
	}
	if !strings.Contains(string(out), "f ") {
		t.Fatalf("expected output to contain face lines, got:\n%s", out)
	}
}

func TestUsageErrorExitCode(t *testing.T) {
	if code := run([]string{"only-one-arg"}); code != exitUsage {
		t.Fatalf("expected exit code %d, got %d", exitUsage, code)
	}
	if code := run(nil); code != exitUsage {
		t.Fatalf("expected exit code %d, got %d", exitUsage, code)
	}
}

func TestInputOpenFailureExitCode(t *testing.T) {
	dir := t.TempDir()
	code := run([]string{filepath.Join(dir, "does-not-exist.csg"), filepath.Join(dir, "out.obj")})
	if code != exitInputOpenFailure {
		t.Fatalf("expected exit code %d, got %d", exitInputOpenFailure, code)
	}
}

func TestOutputOpenFailureExitCode(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "scene.csg")
	if err := os.WriteFile(inPath, []byte("material m;\nobject a = sphere(1);\nbuild a m;\n"), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	// A directory path is not a writable file path.
	code := run([]string{inPath, dir})
	if code != exitOutputOpenFailure {
		t.Fatalf("expected exit code %d, got %d", exitOutputOpenFailure, code)
	}
}

func TestParseErrorExitCode(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "scene.csg")
	outPath := filepath.Join(dir, "scene.obj")
	if err := os.WriteFile(inPath, []byte("this is not valid csg source"), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	code := run([]string{inPath, outPath})
	if code != exitParseError {
		t.Fatalf("expected exit code %d, got %d", exitParseError, code)
	}
}
