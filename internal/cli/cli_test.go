// Package cli_test provides tests for the CLI package.
package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jmylchreest/legible/internal/cli"
	"github.com/jmylchreest/legible/internal/report"
)

// runCommand executes the root command with an isolated empty config file
// and returns the captured output.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cfgPath := filepath.Join(t.TempDir(), "legible.toml")
	if err := os.WriteFile(cfgPath, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	rootCmd := cli.NewRootCmd()
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", cfgPath}, args...))

	err := rootCmd.Execute()
	return out.String(), err
}

func decodeEntries(t *testing.T, out string) []report.Entry {
	t.Helper()
	var entries []report.Entry
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, out)
	}
	return entries
}

func TestVersionFlag(t *testing.T) {
	out, err := runCommand(t, "--version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "legible version") {
		t.Errorf("version output = %q", out)
	}
}

func TestCheckCommand(t *testing.T) {
	t.Run("PassingPair", func(t *testing.T) {
		out, err := runCommand(t, "check", "#000000", "#ffffff", "--format", "json")
		if err != nil {
			t.Fatal(err)
		}

		entries := decodeEntries(t, out)
		if len(entries) != 1 {
			t.Fatalf("got %d entries, want 1", len(entries))
		}
		r := entries[0].Result
		if r.Ratio < 20.9 || r.Ratio > 21.1 {
			t.Errorf("ratio = %v, want 21", r.Ratio)
		}
		if r.Level.String() != "AAA" {
			t.Errorf("level = %v, want AAA", r.Level)
		}
		if r.Tuned != r.Original {
			t.Error("check must not change colours")
		}
	})

	t.Run("FailingPair", func(t *testing.T) {
		out, err := runCommand(t, "check", "#999999", "white", "--format", "json")
		if err != nil {
			t.Fatal(err)
		}

		entries := decodeEntries(t, out)
		r := entries[0].Result
		if r.Level.String() != "FAIL" {
			t.Errorf("level = %v, want FAIL", r.Level)
		}
		if r.Status.Passed() {
			t.Errorf("status = %v, want failed", r.Status)
		}
	})

	t.Run("InvalidColour", func(t *testing.T) {
		if _, err := runCommand(t, "check", "notacolour", "white", "--format", "json"); err == nil {
			t.Error("expected an error for an invalid colour")
		}
	})
}

func TestFixCommand(t *testing.T) {
	t.Run("SinglePair", func(t *testing.T) {
		out, err := runCommand(t, "fix", "#999999", "#ffffff", "--format", "json")
		if err != nil {
			t.Fatal(err)
		}

		entries := decodeEntries(t, out)
		if len(entries) != 1 {
			t.Fatalf("got %d entries, want 1", len(entries))
		}
		r := entries[0].Result
		if !r.Status.Passed() {
			t.Fatalf("status = %v, want a pass", r.Status)
		}
		if r.Ratio < 4.5 {
			t.Errorf("ratio = %v, want >= 4.5", r.Ratio)
		}
		if r.Tuned == r.Original {
			t.Error("failing pair was not changed")
		}
	})

	t.Run("ReportFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "report.json")
		if _, err := runCommand(t, "fix", "#999999", "#ffffff", "--format", "json", "--output", path); err != nil {
			t.Fatal(err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		entries := decodeEntries(t, string(data))
		if len(entries) != 1 {
			t.Fatalf("got %d entries, want 1", len(entries))
		}
	})

	t.Run("InputFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "pairs.txt")
		content := `// failing grey on white
#999999 | #ffffff

#000000 | #ffffff
notacolour | white
`
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}

		out, err := runCommand(t, "fix", "--input", path, "--output", "", "--format", "json")
		if err != nil {
			t.Fatal(err)
		}

		entries := decodeEntries(t, out)
		if len(entries) != 3 {
			t.Fatalf("got %d entries, want 3", len(entries))
		}
		if !entries[0].Result.Status.Passed() {
			t.Errorf("first pair status = %v", entries[0].Result.Status)
		}
		if entries[1].Result.Status.String() != "already-passes" {
			t.Errorf("second pair status = %v", entries[1].Result.Status)
		}
		if entries[2].Err == "" {
			t.Error("unparseable pair lost its error")
		}
	})
}

func TestCSSCommand(t *testing.T) {
	const sheet = `body {
  background-color: #ffffff;
  color: #999999;
}
`

	writeSheet := func(t *testing.T) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "site.css")
		if err := os.WriteFile(path, []byte(sheet), 0o600); err != nil {
			t.Fatal(err)
		}
		return path
	}

	t.Run("DryRunLeavesFileAlone", func(t *testing.T) {
		path := writeSheet(t)

		out, err := runCommand(t, "css", path, "--format", "json")
		if err != nil {
			t.Fatal(err)
		}

		entries := decodeEntries(t, out)
		if len(entries) != 1 {
			t.Fatalf("got %d entries, want 1", len(entries))
		}
		if entries[0].Selector != "body" || entries[0].File != path {
			t.Errorf("entry = %+v", entries[0])
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != sheet {
			t.Error("dry run modified the file")
		}
	})

	t.Run("WriteRewritesInPlace", func(t *testing.T) {
		path := writeSheet(t)

		if _, err := runCommand(t, "css", path, "--write", "--format", "json"); err != nil {
			t.Fatal(err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if strings.Contains(string(data), "#999999") {
			t.Error("failing colour still present after --write")
		}
		if !strings.Contains(string(data), "background-color: #ffffff") {
			t.Error("unrelated declaration was not preserved")
		}
	})

	t.Run("OutputWritesElsewhere", func(t *testing.T) {
		path := writeSheet(t)
		fixed := filepath.Join(t.TempDir(), "fixed.css")

		if _, err := runCommand(t, "css", path, "--output", fixed, "--format", "json", "--write=false"); err != nil {
			t.Fatal(err)
		}

		orig, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if string(orig) != sheet {
			t.Error("--output modified the input file")
		}

		data, err := os.ReadFile(fixed)
		if err != nil {
			t.Fatal(err)
		}
		if strings.Contains(string(data), "#999999") {
			t.Error("failing colour still present in the fixed sheet")
		}
	})

	t.Run("MissingFileIsReported", func(t *testing.T) {
		out, err := runCommand(t, "css", filepath.Join(t.TempDir(), "nope.css"), "--format", "json", "--output", "", "--write=false")
		if err != nil {
			t.Fatal(err)
		}

		entries := decodeEntries(t, out)
		if len(entries) != 1 || entries[0].Err == "" {
			t.Fatalf("entries = %+v, want one error entry", entries)
		}
	})
}
