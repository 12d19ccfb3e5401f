package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/bpmndot/pkg/errors"
)

// stage copies a BPMN fixture into a temp dir so default outputs land there.
func stage(t *testing.T, fixture string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "..", "pkg", "bpmn", "testdata", fixture))
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "order.bpmn")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func runCLI(t *testing.T, args ...string) error {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	root := New(io.Discard, LogInfo).RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	return root.ExecuteContext(context.Background())
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func TestConvertDefaultOutput(t *testing.T) {
	input := stage(t, "simple.bpmn")

	if err := runCLI(t, input); err != nil {
		t.Fatalf("convert error: %v", err)
	}

	dot := readFile(t, input+".dot")
	if !strings.HasPrefix(dot, "digraph G {\n") {
		t.Errorf("output is not a digraph:\n%s", dot)
	}
	if !strings.Contains(dot, "class: Foo") || strings.Contains(dot, "com.acme") {
		t.Errorf("expected short class name:\n%s", dot)
	}
}

func TestConvertFlags(t *testing.T) {
	input := stage(t, "simple.bpmn")
	output := filepath.Join(filepath.Dir(input), "out.gv")

	if err := runCLI(t, input, "-o", output, "--show-package-names", "--show-flows"); err != nil {
		t.Fatalf("convert error: %v", err)
	}

	dot := readFile(t, output)
	for _, want := range []string{"class: com.acme.Foo", `S -> T [label="f1"]`} {
		if !strings.Contains(dot, want) {
			t.Errorf("output missing %q:\n%s", want, dot)
		}
	}
}

func TestConvertMultipleFormats(t *testing.T) {
	input := stage(t, "error_handling.bpmn")
	base := filepath.Join(filepath.Dir(input), "diagram.dot")

	if err := runCLI(t, input, "-f", "dot,json", "-o", base, "--show-error-handling"); err != nil {
		t.Fatalf("convert error: %v", err)
	}

	dot := readFile(t, strings.TrimSuffix(base, ".dot")+".dot")
	if !strings.Contains(dot, "subgraph cluster0 {") {
		t.Errorf("error handling should be kept:\n%s", dot)
	}
	if js := readFile(t, strings.TrimSuffix(base, ".dot")+".json"); !strings.Contains(js, `"EH"`) {
		t.Errorf("json export missing subprocess:\n%s", js)
	}
}

func TestConvertJSONInput(t *testing.T) {
	input := stage(t, "error_handling.bpmn")

	if err := runCLI(t, input, "-f", "dot,json", "--show-error-handling"); err != nil {
		t.Fatalf("convert error: %v", err)
	}
	exported := input + ".json"
	if err := runCLI(t, exported, "--show-error-handling"); err != nil {
		t.Fatalf("convert json error: %v", err)
	}
	if got, want := readFile(t, exported+".dot"), readFile(t, input+".dot"); got != want {
		t.Errorf("DOT from exported graph differs:\ngot:\n%s\nwant:\n%s", got, want)
	}

	pruned := filepath.Join(filepath.Dir(input), "pruned.dot")
	if err := runCLI(t, exported, "-o", pruned); err != nil {
		t.Fatalf("convert json error: %v", err)
	}
	if dot := readFile(t, pruned); strings.Contains(dot, "cluster") || !strings.Contains(dot, "A -> B") {
		t.Errorf("json input should be pruned like BPMN:\n%s", dot)
	}
}

func TestConvertWritesNothingOnError(t *testing.T) {
	input := stage(t, "two_processes.bpmn")

	err := runCLI(t, input, "-f", "dot,json")
	if !errors.Is(err, errors.ErrCodeInvalidStructure) {
		t.Fatalf("convert error = %v, want INVALID_STRUCTURE", err)
	}
	for _, ext := range []string{".dot", ".json"} {
		if _, err := os.Stat(input + ext); !os.IsNotExist(err) {
			t.Errorf("%s should not have been written", input+ext)
		}
	}
}

func TestConvertArgs(t *testing.T) {
	if err := runCLI(t); err == nil {
		t.Error("missing input should fail")
	}
	if err := runCLI(t, "a.bpmn", "b.bpmn"); err == nil {
		t.Error("two inputs should fail")
	}
	input := stage(t, "simple.bpmn")
	if err := runCLI(t, input, "-f", "gif"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("bad format error = %v, want INVALID_FORMAT", err)
	}
}

func TestConfigPrecedence(t *testing.T) {
	input := stage(t, "simple.bpmn")
	dir := filepath.Dir(input)
	cfgPath := filepath.Join(dir, "bpmndot.yaml")
	cfg := "formats: [json]\nshow_package_names: true\ncache:\n  backend: none\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	// formats from the file, package names from the file
	if err := runCLI(t, input, "--config", cfgPath); err != nil {
		t.Fatalf("convert error: %v", err)
	}
	if _, err := os.Stat(input + ".json"); err != nil {
		t.Errorf("config formats not applied: %v", err)
	}
	if _, err := os.Stat(input + ".dot"); !os.IsNotExist(err) {
		t.Error("dot should not be written when the config asks for json only")
	}

	// explicit flags override the file
	if err := runCLI(t, input, "--config", cfgPath, "-f", "dot", "--show-package-names=false"); err != nil {
		t.Fatalf("convert error: %v", err)
	}
	if dot := readFile(t, input+".dot"); !strings.Contains(dot, "class: Foo") {
		t.Errorf("flag should override config show_package_names:\n%s", dot)
	}

	if err := runCLI(t, input, "--config", filepath.Join(dir, "missing.toml")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing config error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestCompletion(t *testing.T) {
	var buf bytes.Buffer
	root := New(io.Discard, LogInfo).RootCommand()
	root.SetOut(&buf)
	root.SetArgs([]string{"completion", "bash"})

	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("completion error: %v", err)
	}
	if !strings.Contains(buf.String(), "bpmndot") {
		t.Error("completion script should mention the command name")
	}
}

func TestCachePath(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")

	var buf bytes.Buffer
	root := New(io.Discard, LogInfo).RootCommand()
	root.SetOut(&buf)
	root.SetArgs([]string{"cache", "path"})

	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("cache path error: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != filepath.Join("/tmp/xdg", appName) {
		t.Errorf("cache path = %q", got)
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	formats := []string{"dot", "json"}
	artifacts := map[string][]byte{"dot": []byte("digraph G {\n}\n"), "json": []byte(`{"items": []}`)}

	t.Run("all written", func(t *testing.T) {
		paths := map[string]string{"dot": filepath.Join(dir, "a.dot"), "json": filepath.Join(dir, "a.json")}
		written, err := writeArtifacts(artifacts, formats, paths)
		if err != nil {
			t.Fatalf("writeArtifacts() error = %v", err)
		}
		if len(written) != 2 || written[0] != paths["dot"] || written[1] != paths["json"] {
			t.Errorf("written = %v", written)
		}
		if got := readFile(t, paths["json"]); got != `{"items": []}` {
			t.Errorf("json content = %q", got)
		}
		entries, _ := os.ReadDir(dir)
		if len(entries) != 2 {
			t.Errorf("dir has %d entries, want 2 (no temp files)", len(entries))
		}
	})

	t.Run("later failure leaves nothing", func(t *testing.T) {
		out := t.TempDir()
		paths := map[string]string{
			"dot":  filepath.Join(out, "b.dot"),
			"json": filepath.Join(out, "missing", "b.json"),
		}
		if _, err := writeArtifacts(artifacts, formats, paths); err == nil {
			t.Fatal("writeArtifacts() error = nil, want error")
		}
		entries, err := os.ReadDir(out)
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != 0 {
			t.Errorf("output dir should be empty, has %v", entries)
		}
	})
}
