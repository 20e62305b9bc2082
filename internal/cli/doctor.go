package cli

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/ecruz165/create-ts-router-vite/internal/config"
	"github.com/ecruz165/create-ts-router-vite/internal/manifest"
	"github.com/ecruz165/create-ts-router-vite/internal/tasks"
	"github.com/spf13/cobra"
)

type doctorOptions struct {
	checkRuntime  bool
	checkTemplate bool
	checkManifest string
	templateDir   string
}

func newDoctorCmd(configPath *string) *cobra.Command {
	opts := &doctorOptions{}

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check that the tools a new project needs are available",
		Long: `Run diagnostic checks: git and the configured package manager on PATH, the
installed git version, and the template manifest. A failed check makes the
command exit non-zero.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(*configPath)
			if err != nil {
				return err
			}

			d := &doctor{
				out:      cmd.OutOrStdout(),
				runner:   newRunner(),
				settings: settings,
			}
			ctx := commandContext(cmd)

			anyFlag := opts.checkRuntime || opts.checkTemplate || opts.checkManifest != ""
			if !anyFlag || opts.checkRuntime {
				d.runtimeCheck(ctx)
			}
			if !anyFlag || opts.checkTemplate {
				tmpl, err := (&createOptions{templateDir: opts.templateDir}).template()
				if err != nil {
					return err
				}
				d.templateCheck(tmpl)
			}
			if opts.checkManifest != "" {
				d.manifestCheck(opts.checkManifest)
			}

			if d.failures > 0 {
				return fmt.Errorf("%d check(s) failed", d.failures)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.checkRuntime, "check-runtime", false, "Verify git and the package manager are available")
	cmd.Flags().BoolVar(&opts.checkTemplate, "check-template", false, "Validate the template's package.json")
	cmd.Flags().StringVar(&opts.checkManifest, "check-manifest", "", "Validate a package.json at the given path")
	cmd.Flags().StringVar(&opts.templateDir, "template", "", "Template directory to check instead of the bundled starter")
	return cmd
}

type doctor struct {
	out      io.Writer
	runner   tasks.CommandRunner
	settings config.Settings
	failures int
}

func (d *doctor) ok(format string, a ...any) {
	fmt.Fprintf(d.out, "  [ OK ] "+format+"\n", a...)
}

func (d *doctor) fail(tag, format string, a ...any) {
	d.failures++
	fmt.Fprintf(d.out, "  ["+tag+"] "+format+"\n", a...)
}

func (d *doctor) runtimeCheck(ctx context.Context) {
	fmt.Fprintln(d.out, "Runtime check:")

	if d.settings.GitBackend == config.GitBackendBuiltin {
		d.ok("git: using the builtin backend")
	} else {
		d.gitCheck(ctx)
	}

	pm := d.settings.PackageManager
	res, err := d.runner.Run(ctx, pm, []string{"--version"}, tasks.RunOpts{})
	switch {
	case err != nil:
		d.fail("MISS", "%s not found: %v", pm, err)
	case res.ExitCode != 0:
		d.fail("FAIL", "%s --version exited with code %d", pm, res.ExitCode)
	default:
		d.ok("%s %s", pm, strings.TrimSpace(res.Stdout))
	}
}

func (d *doctor) gitCheck(ctx context.Context) {
	res, err := d.runner.Run(ctx, "git", []string{"--version"}, tasks.RunOpts{})
	if err != nil {
		d.fail("MISS", "git not found: %v", err)
		return
	}
	if res.ExitCode != 0 {
		d.fail("FAIL", "git --version exited with code %d", res.ExitCode)
		return
	}

	found, err := parseGitVersion(res.Stdout)
	if err != nil {
		d.fail("FAIL", "%v", err)
		return
	}

	minVersion := d.settings.MinGitVersion
	if minVersion == "" {
		d.ok("git %s", found)
		return
	}
	constraint, err := semver.NewConstraint(">= " + minVersion)
	if err != nil {
		d.fail("FAIL", "invalid %s %q: %v", config.KeyMinGitVersion, minVersion, err)
		return
	}
	if !constraint.Check(found) {
		d.fail("FAIL", "git %s is older than %s", found, minVersion)
		return
	}
	d.ok("git %s (>= %s)", found, minVersion)
}

var gitVersionPattern = regexp.MustCompile(`\d+\.\d+(\.\d+)?`)

// parseGitVersion extracts the version from `git --version` output such as
// "git version 2.39.3 (Apple Git-145)" or "git version 2.41.0.windows.1".
func parseGitVersion(output string) (*semver.Version, error) {
	raw := gitVersionPattern.FindString(output)
	if raw == "" {
		return nil, fmt.Errorf("cannot find a version in %q", strings.TrimSpace(output))
	}
	v, err := semver.NewVersion(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing git version %q: %w", raw, err)
	}
	return v, nil
}

func (d *doctor) templateCheck(tmpl fs.FS) {
	fmt.Fprintln(d.out, "Template check:")

	data, err := fs.ReadFile(tmpl, manifest.FileName)
	if err != nil {
		d.fail("FAIL", "reading %s: %v", manifest.FileName, err)
		return
	}
	d.report(manifest.FileName, data)
}

func (d *doctor) manifestCheck(path string) {
	fmt.Fprintf(d.out, "Manifest validation: %s\n", path)

	result, err := manifest.ValidateFile(path)
	if err != nil {
		d.fail("FAIL", "%v", err)
		return
	}
	d.reportResult(path, result)
}

func (d *doctor) report(label string, data []byte) {
	result, err := manifest.Validate(data)
	if err != nil {
		d.fail("FAIL", "%s: %v", label, err)
		return
	}
	d.reportResult(label, result)
}

func (d *doctor) reportResult(label string, result *manifest.ValidationResult) {
	if result.Valid {
		d.ok("%s is valid", label)
		return
	}
	d.fail("FAIL", "%s: %d validation issue(s):", label, len(result.Issues))
	for _, issue := range result.Issues {
		fmt.Fprintf(d.out, "    - %s\n", issue)
	}
}
