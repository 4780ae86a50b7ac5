package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const waitlistExport = `Requestor,Email,Housing Assignment,Graduation Year,Notes
Ada Lovelace,Ada@Example.edu,North Hall 214,Spring 2027,first pick
Grace Hopper,grace@example.edu,West Tower 9,2026,
,missing@example.edu,South 12,2028,no name
Ada Again,ADA@example.edu,North Hall 214,Spring 2027,renewed request
`

func runTransform(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeInput(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "input.csv")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	return path
}

func TestTransformWritesSimpleLayout(t *testing.T) {
	input := writeInput(t, waitlistExport)
	output := filepath.Join(t.TempDir(), "donors.csv")

	_, stderr, err := runTransform(t, input, "--output", output)
	if err != nil {
		t.Fatalf("transform: %v", err)
	}

	raw, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	if len(lines) != 3 {
		t.Fatalf("output has %d lines, want header plus 2 records:\n%s", len(lines), raw)
	}
	if lines[0] != "Name,Email,Housing,Grad Year" {
		t.Errorf("header = %q", lines[0])
	}
	// Duplicate email collapsed, later row's values win, email lowercased.
	if lines[1] != "Ada Again,ada@example.edu,North Hall 214,2027" {
		t.Errorf("first record = %q", lines[1])
	}
	if lines[2] != "Grace Hopper,grace@example.edu,West Tower 9,2026" {
		t.Errorf("second record = %q", lines[2])
	}

	if !strings.Contains(stderr, "waitlist") {
		t.Errorf("summary does not name the detected format:\n%s", stderr)
	}
}

func TestTransformPreviewDoesNotWrite(t *testing.T) {
	input := writeInput(t, waitlistExport)
	output := filepath.Join(t.TempDir(), "donors.csv")

	stdout, _, err := runTransform(t, input, "--output", output, "--preview")
	if err != nil {
		t.Fatalf("transform --preview: %v", err)
	}

	if _, err := os.Stat(output); !os.IsNotExist(err) {
		t.Errorf("preview created the output file")
	}
	if !strings.Contains(stdout, "ada@example.edu") {
		t.Errorf("preview table missing record:\n%s", stdout)
	}
}

func TestTransformRejectsMalformedCSV(t *testing.T) {
	input := writeInput(t, "Name,Email\n\"unterminated")

	_, _, err := runTransform(t, input)
	if err == nil {
		t.Fatal("expected parse error")
	}
}

func TestTransformMissingInputFile(t *testing.T) {
	_, _, err := runTransform(t, filepath.Join(t.TempDir(), "nope.csv"))
	if err == nil {
		t.Fatal("expected error for missing input")
	}
}
