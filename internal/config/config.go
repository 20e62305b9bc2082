package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ecruz165/create-ts-router-vite/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Keys understood by the CLI.
const (
	KeyPackageManager = "package_manager"
	KeyInstallArgs    = "install_args"
	KeyDevScript      = "dev_script"
	KeyDefaultName    = "default_name"
	KeyGitPolicy      = "git.policy"
	KeyGitBackend     = "git.backend"
	KeyCommitMessage  = "git.commit_message"
	KeyMinGitVersion  = "doctor.min_git_version"
)

// Version control policies.
const (
	GitPolicyPrompt = "prompt"
	GitPolicyAlways = "always"
	GitPolicyNever  = "never"
)

// Version control backends.
const (
	GitBackendCLI     = "cli"
	GitBackendBuiltin = "builtin"
)

// Settings is the resolved view of every key the CLI reads.
type Settings struct {
	PackageManager string
	InstallArgs    []string
	DevScript      string
	DefaultName    string
	GitPolicy      string
	GitBackend     string
	CommitMessage  string
	MinGitVersion  string
}

// Dir returns the path to the config directory (~/.create-ts-router-vite/),
// or the value of CTRV_HOME when set.
func Dir() string {
	if dir := os.Getenv(branding.EnvVar("home")); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file.
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

func setDefaults() {
	viper.SetDefault(KeyPackageManager, "bun")
	viper.SetDefault(KeyInstallArgs, []string{"install"})
	viper.SetDefault(KeyDevScript, "dev")
	viper.SetDefault(KeyDefaultName, branding.DefaultProjectName())
	viper.SetDefault(KeyGitPolicy, GitPolicyPrompt)
	viper.SetDefault(KeyGitBackend, GitBackendCLI)
	viper.SetDefault(KeyCommitMessage, "Initial commit")
	viper.SetDefault(KeyMinGitVersion, "2.28.0")
}

// Load initializes Viper to read from the config file and environment.
// An empty path selects FilePath(). A missing file is not an error; a file
// that exists but cannot be parsed is.
func Load(path string) error {
	if path == "" {
		path = FilePath()
	}

	setDefaults()
	viper.SetConfigFile(path)
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	return nil
}

// Get returns a config value by key. Returns empty string if not set. List
// values are joined with spaces, the form Set accepts them in.
func Get(key string) string {
	switch viper.Get(key).(type) {
	case []string, []any:
		return strings.Join(viper.GetStringSlice(key), " ")
	}
	return viper.GetString(key)
}

// Current returns the settings resolved from defaults, file and environment.
func Current() Settings {
	return Settings{
		PackageManager: viper.GetString(KeyPackageManager),
		InstallArgs:    viper.GetStringSlice(KeyInstallArgs),
		DevScript:      viper.GetString(KeyDevScript),
		DefaultName:    viper.GetString(KeyDefaultName),
		GitPolicy:      strings.ToLower(viper.GetString(KeyGitPolicy)),
		GitBackend:     strings.ToLower(viper.GetString(KeyGitBackend)),
		CommitMessage:  viper.GetString(KeyCommitMessage),
		MinGitVersion:  viper.GetString(KeyMinGitVersion),
	}
}

// Validate reports settings that would make a run misbehave.
func (s Settings) Validate() error {
	switch s.GitPolicy {
	case GitPolicyPrompt, GitPolicyAlways, GitPolicyNever:
	default:
		return fmt.Errorf("invalid %s %q: must be %q, %q or %q",
			KeyGitPolicy, s.GitPolicy, GitPolicyPrompt, GitPolicyAlways, GitPolicyNever)
	}
	switch s.GitBackend {
	case GitBackendCLI, GitBackendBuiltin:
	default:
		return fmt.Errorf("invalid %s %q: must be %q or %q",
			KeyGitBackend, s.GitBackend, GitBackendCLI, GitBackendBuiltin)
	}
	if strings.TrimSpace(s.PackageManager) == "" {
		return fmt.Errorf("%s must not be empty", KeyPackageManager)
	}
	return nil
}

// Set writes a config key-value pair to path (FilePath() when empty) and
// saves the file.
func Set(path, key, value string) error {
	if path == "" {
		if err := EnsureDir(); err != nil {
			return err
		}
		path = FilePath()
	}

	viper.Set(key, value)

	// Create the file if it doesn't exist.
	if _, err := os.Stat(path); os.IsNotExist(err) {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", path, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
