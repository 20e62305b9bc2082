//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir     string // HOME, so no user config is read
	TemplateDir string // template tree copied into new projects
	BaseDir     string // parent of created projects
}

// setupTestEnv creates isolated temp directories and points HOME at one of
// them. Environment and Viper state are restored after the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		HomeDir:     t.TempDir(),
		TemplateDir: t.TempDir(),
		BaseDir:     t.TempDir(),
	}

	t.Setenv("HOME", env.HomeDir)
	t.Setenv("CTRV_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(env.HomeDir, ".config"))
	viper.Reset()
	t.Cleanup(viper.Reset)

	return env
}

// setupTemplate writes a small starter into dir: a manifest, the ignore file
// under its template name and a nested source tree.
func setupTemplate(t *testing.T, dir string) {
	t.Helper()

	writeFile(t, filepath.Join(dir, "package.json"), `{
  "name": "template-placeholder",
  "private": true,
  "version": "0.0.0",
  "type": "module",
  "scripts": {
    "dev": "vite --port=3000",
    "build": "vite build && tsc"
  },
  "dependencies": {
    "@tanstack/react-router": "^1.58.3"
  }
}
`)
	writeFile(t, filepath.Join(dir, "_gitignore"), "node_modules\ndist\n")
	writeFile(t, filepath.Join(dir, "index.html"), "<div id=\"app\"></div>\n")
	writeFile(t, filepath.Join(dir, "src", "routes", "__root.tsx"), "export const Route = {}\n")
	writeFile(t, filepath.Join(dir, "src", "main.tsx"), "import './routes/__root'\n")
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Lstat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}
