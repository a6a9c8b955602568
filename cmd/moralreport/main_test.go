package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const jsonPayload = `{
	"overallScore": 82.4,
	"scoreCategory": "Baik",
	"scoreInterpretation": "Kecerdasan moral berkembang baik.",
	"aspects": {"empati": 75.6, "keadilan": 88.2},
	"aspectCategories": {"empati": "Cukup", "keadilan": "Baik"}
}`

const yamlPayload = `overallScore: 70
scoreCategory: Cukup
aspects:
  kejujuran: 74.5
  empati: 75.5
aspectCategories:
  kejujuran: Cukup
`

// run executes the root command with args and returns stdout
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--log-level", "off"}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestNewRootCmd(t *testing.T) {
	cmd := NewRootCmd()

	if cmd.Use != "moralreport" {
		t.Errorf("expected use 'moralreport', got %q", cmd.Use)
	}
	for _, name := range []string{"config", "log-level"} {
		if cmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("expected persistent flag %q", name)
		}
	}

	want := map[string]bool{"serve": false, "render": false, "inspect": false, "version": false}
	for _, sub := range cmd.Commands() {
		if _, ok := want[sub.Name()]; ok {
			want[sub.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("expected %s subcommand", name)
		}
	}
}

func TestRenderAndInspect(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "result.json", jsonPayload)

	out, _, err := run(t, "", "render", "--input", input, "--dir", dir)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	output := strings.TrimSpace(out)
	base := filepath.Base(output)
	if !strings.HasPrefix(base, "Hasil_Tes_") || !strings.HasSuffix(base, ".docx") {
		t.Fatalf("unexpected output name %q", base)
	}
	if filepath.Dir(output) != dir {
		t.Errorf("expected output in %s, got %s", dir, output)
	}

	out, _, err = run(t, "", "inspect", output)
	if err != nil {
		t.Fatalf("inspect failed: %v", err)
	}
	for _, want := range []string{
		"Laporan Hasil Tes Kecerdasan Moral",
		"82.4 - Baik",
		"Kecerdasan moral berkembang baik.",
		"Empati",
		"76",
		"Keadilan",
		"88",
	} {
		if !strings.Contains(out, want+"\n") {
			t.Errorf("expected inspect output to contain %q, got:\n%s", want, out)
		}
	}

	out, _, err = run(t, "", "inspect", "--parts", output)
	if err != nil {
		t.Fatalf("inspect --parts failed: %v", err)
	}
	if !strings.Contains(out, "word/document.xml") || !strings.Contains(out, "wordprocessingml.document.main+xml") {
		t.Errorf("expected part listing, got:\n%s", out)
	}
	if strings.Contains(out, "(unregistered)") {
		t.Errorf("expected every part to have a content type, got:\n%s", out)
	}
}

func TestRenderYAML(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "result.yaml", yamlPayload)
	output := filepath.Join(dir, "report.docx")

	if _, _, err := run(t, "", "render", "-i", input, "-o", output); err != nil {
		t.Fatalf("render failed: %v", err)
	}

	out, _, err := run(t, "", "inspect", output)
	if err != nil {
		t.Fatalf("inspect failed: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	tail := lines[len(lines)-6:]
	want := []string{"Kejujuran", "74", "Cukup", "Empati", "76", ""}
	for i := range want {
		if tail[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, tail[i], want[i])
		}
	}
}

func TestRenderStdin(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "stdin.docx")

	if _, _, err := run(t, jsonPayload, "render", "--input", "-", "--output", output); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if info, err := os.Stat(output); err != nil || info.Size() == 0 {
		t.Fatalf("expected non-empty output file, stat err %v", err)
	}
}

func TestRenderErrors(t *testing.T) {
	dir := t.TempDir()
	notObject := writeFile(t, dir, "list.json", `[1, 2, 3]`)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "missing input flag",
			args: []string{"render"},
			want: "required flag",
		},
		{
			name: "missing input file",
			args: []string{"render", "--input", filepath.Join(dir, "nope.json")},
			want: "read input",
		},
		{
			name: "payload is not an object",
			args: []string{"render", "--input", notObject, "--dir", dir},
			want: "invalid payload",
		},
		{
			name: "unknown format",
			args: []string{"render", "--input", notObject, "--format", "xml"},
			want: "unknown format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, "", tt.args...)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestInspectRejectsNonPackage(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "fake.docx", "not a zip")

	if _, _, err := run(t, "", "inspect", path); err == nil {
		t.Error("expected an error for a non-zip file")
	}
}

func TestPayloadFormat(t *testing.T) {
	tests := []struct {
		input string
		flag  string
		want  string
	}{
		{"result.json", "", "json"},
		{"result.YAML", "", "yaml"},
		{"result.yml", "", "yaml"},
		{"-", "", "json"},
		{"-", "yml", "yaml"},
		{"result.yaml", "JSON", "json"},
	}
	for _, tt := range tests {
		got, err := payloadFormat(tt.input, tt.flag)
		if err != nil {
			t.Errorf("payloadFormat(%q, %q) error: %v", tt.input, tt.flag, err)
			continue
		}
		if got != tt.want {
			t.Errorf("payloadFormat(%q, %q) = %q, want %q", tt.input, tt.flag, got, tt.want)
		}
	}
}

func TestVersionCmd(t *testing.T) {
	out, _, err := run(t, "", "version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "moralreport version") || !strings.Contains(out, "commit:") {
		t.Errorf("unexpected version output %q", out)
	}
}
