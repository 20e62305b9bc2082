package scaffold

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ecruz165/create-ts-router-vite/internal/manifest"
)

const (
	// IgnoreTemplateName is the ignore file as stored in templates. Package
	// registries drop files named .gitignore, so templates ship it renamed.
	IgnoreTemplateName = "_gitignore"

	// IgnoreFileName is the activated ignore file.
	IgnoreFileName = ".gitignore"
)

// ActivateIgnoreFile copies <dir>/_gitignore to <dir>/.gitignore and removes
// the original. It is a no-op when the template file is absent. Failure to
// remove the original is reported as a warning, not an error.
func ActivateIgnoreFile(dir string) (activated bool, warning string, err error) {
	tmplPath := filepath.Join(dir, IgnoreTemplateName)

	data, err := os.ReadFile(tmplPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, "", nil
		}
		return false, "", fmt.Errorf("reading %s: %w", tmplPath, err)
	}

	ignorePath := filepath.Join(dir, IgnoreFileName)
	if err := os.WriteFile(ignorePath, data, 0644); err != nil {
		return false, "", fmt.Errorf("writing %s: %w", ignorePath, err)
	}

	if err := os.Remove(tmplPath); err != nil {
		return true, fmt.Sprintf("could not remove %s: %v", tmplPath, err), nil
	}
	return true, "", nil
}

// PostProcess applies the ignore file and manifest adjustments to a freshly
// mirrored project. Manifest schema problems end up in result.Warnings; a
// manifest that is not valid JSON is returned as a *manifest.ParseError.
func PostProcess(dir, projectName string, result *Result) error {
	activated, warning, err := ActivateIgnoreFile(dir)
	if err != nil {
		return err
	}
	if warning != "" {
		result.Warnings = append(result.Warnings, warning)
	}
	if activated {
		result.renameFile(IgnoreTemplateName, IgnoreFileName, warning == "")
	}

	manifestPath := filepath.Join(dir, manifest.FileName)
	rewritten, err := manifest.RewriteName(manifestPath, projectName)
	if err != nil {
		return err
	}
	if !rewritten {
		return nil
	}

	valResult, err := manifest.ValidateFile(manifestPath)
	if err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not validate %s: %v", manifest.FileName, err))
		return nil
	}
	for _, issue := range valResult.Issues {
		result.Warnings = append(result.Warnings, manifest.FileName+": "+issue.String())
	}
	return nil
}
