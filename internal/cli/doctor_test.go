package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseGitVersion(t *testing.T) {
	tests := []struct {
		output  string
		want    string
		wantErr bool
	}{
		{"git version 2.39.3 (Apple Git-145)\n", "2.39.3", false},
		{"git version 2.41.0.windows.1\n", "2.41.0", false},
		{"git version 2.30\n", "2.30.0", false},
		{"command not understood\n", "", true},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.output), func(t *testing.T) {
			v, err := parseGitVersion(tt.output)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %s", v)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseGitVersion() error: %v", err)
			}
			if v.String() != tt.want {
				t.Errorf("version = %s, want %s", v, tt.want)
			}
		})
	}
}

func TestDoctorAllChecksPass(t *testing.T) {
	isolate(t)
	runner := newFakeRunner()
	runner.stdout["git --version"] = "git version 2.43.0\n"
	runner.stdout["bun --version"] = "1.1.8\n"
	useRunner(t, runner)

	out, err := execute(t, "", "doctor")
	if err != nil {
		t.Fatalf("doctor error: %v\n%s", err, out)
	}
	for _, s := range []string{
		"[ OK ] git 2.43.0 (>= 2.28.0)",
		"[ OK ] bun 1.1.8",
		"[ OK ] package.json is valid",
	} {
		if !strings.Contains(out, s) {
			t.Errorf("output missing %q:\n%s", s, out)
		}
	}
}

func TestDoctorOldGit(t *testing.T) {
	isolate(t)
	runner := newFakeRunner()
	runner.stdout["git --version"] = "git version 2.20.1\n"
	useRunner(t, runner)

	out, err := execute(t, "", "doctor", "--check-runtime")
	if err == nil {
		t.Fatal("expected failure for an outdated git")
	}
	if !strings.Contains(out, "[FAIL] git 2.20.1 is older than 2.28.0") {
		t.Errorf("unexpected output:\n%s", out)
	}
	if strings.Contains(out, "Template check:") {
		t.Error("only the requested check should run")
	}
}

func TestDoctorMissingTools(t *testing.T) {
	isolate(t)
	runner := newFakeRunner()
	runner.missing["git"] = true
	runner.missing["bun"] = true
	useRunner(t, runner)

	out, err := execute(t, "", "doctor", "--check-runtime")
	if err == nil || !strings.Contains(err.Error(), "2 check(s) failed") {
		t.Fatalf("error = %v, want 2 failed checks", err)
	}
	if !strings.Contains(out, "[MISS] git not found") || !strings.Contains(out, "[MISS] bun not found") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestDoctorBuiltinBackendSkipsGitBinary(t *testing.T) {
	isolate(t)
	runner := newFakeRunner()
	runner.missing["git"] = true
	useRunner(t, runner)
	t.Setenv("CTRV_GIT_BACKEND", "builtin")

	out, err := execute(t, "", "doctor", "--check-runtime")
	if err != nil {
		t.Fatalf("doctor error: %v\n%s", err, out)
	}
	for _, c := range runner.calls {
		if strings.HasPrefix(c, "git") {
			t.Errorf("git binary should not be probed, got %q", c)
		}
	}
}

func TestDoctorCheckManifest(t *testing.T) {
	isolate(t)
	useRunner(t, newFakeRunner())
	dir := t.TempDir()

	good := filepath.Join(dir, "good.json")
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(good, []byte(`{"name": "my-app", "version": "1.0.0"}`), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bad, []byte(`{"name": "My App", "version": "one"}`), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "", "doctor", "--check-manifest", good)
	if err != nil {
		t.Fatalf("valid manifest failed: %v\n%s", err, out)
	}

	out, err = execute(t, "", "doctor", "--check-manifest", bad)
	if err == nil {
		t.Fatalf("invalid manifest passed:\n%s", out)
	}
	if !strings.Contains(out, "validation issue(s)") {
		t.Errorf("expected issue list:\n%s", out)
	}
}

func TestDoctorTemplateWithoutManifest(t *testing.T) {
	isolate(t)
	useRunner(t, newFakeRunner())

	_, err := execute(t, "", "doctor", "--check-template", "--template", t.TempDir())
	if err == nil {
		t.Fatal("expected failure for a template without package.json")
	}
}
