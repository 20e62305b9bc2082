package scaffold

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrProjectExists is matched by the error returned when the target
	// directory is already taken by any kind of filesystem entry.
	ErrProjectExists = errors.New("project directory already exists")

	// ErrEmptyName is returned for a blank project name.
	ErrEmptyName = errors.New("project name must not be empty")

	// ErrInsideTemplate is returned when the project would be created inside
	// the template directory it is copied from.
	ErrInsideTemplate = errors.New("project directory is inside the template directory")
)

// ExistsError reports that the project path is already taken.
type ExistsError struct {
	Path string
}

func (e *ExistsError) Error() string {
	return fmt.Sprintf("directory '%s' already exists", e.Path)
}

// Is lets errors.Is(err, ErrProjectExists) match.
func (e *ExistsError) Is(target error) bool { return target == ErrProjectExists }

// Result holds the outcome of a materialization.
type Result struct {
	OutputDir string
	Files     []string
	Warnings  []string
}

// renameFile swaps from for to in the file list. Without replace the
// original entry stays listed because it could not be removed from disk.
func (r *Result) renameFile(from, to string, replace bool) {
	for i, f := range r.Files {
		if f == from {
			if replace {
				r.Files[i] = to
				return
			}
			break
		}
	}
	r.Files = append(r.Files, to)
}

// Materializer produces project directories from a template tree.
type Materializer struct {
	// Template is the tree copied into every project.
	Template fs.FS
	// TemplateDir is the directory Template was opened from, when it lives
	// on disk. Targets inside it are refused.
	TemplateDir string
	// BaseDir is the directory new projects are created in. Empty means the
	// current working directory.
	BaseDir string
}

// New returns a Materializer that creates projects from template in
// baseDir.
func New(template fs.FS, baseDir string) *Materializer {
	return &Materializer{Template: template, BaseDir: baseDir}
}

// NewFromDir returns a Materializer copying the template directory
// templateDir into projects under baseDir.
func NewFromDir(templateDir, baseDir string) *Materializer {
	return &Materializer{Template: os.DirFS(templateDir), TemplateDir: templateDir, BaseDir: baseDir}
}

// ProjectPath returns where a project called name will be created.
func (m *Materializer) ProjectPath(name string) string {
	base := m.BaseDir
	if base == "" {
		base = "."
	}
	return filepath.Join(base, name)
}

// Materialize creates the project directory for name, mirrors the template
// into it, and post-processes the copy. The target must not exist. A failure
// after the directory was created leaves whatever was already copied in
// place.
func (m *Materializer) Materialize(name string) (*Result, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	if m.Template == nil {
		return nil, errors.New("no template configured")
	}

	target := m.ProjectPath(name)

	if _, err := os.Lstat(target); err == nil {
		return nil, &ExistsError{Path: name}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("checking %s: %w", target, err)
	}

	if m.TemplateDir != "" {
		inside, err := within(m.TemplateDir, target)
		if err != nil {
			return nil, err
		}
		if inside {
			return nil, fmt.Errorf("%w: %s is under %s", ErrInsideTemplate, target, m.TemplateDir)
		}
	}

	if err := os.MkdirAll(target, 0755); err != nil {
		return nil, fmt.Errorf("creating project directory: %w", err)
	}

	files, err := Mirror(m.Template, target)
	if err != nil {
		return nil, fmt.Errorf("copying template: %w", err)
	}

	result := &Result{
		OutputDir: target,
		Files:     files,
	}

	if err := PostProcess(target, name, result); err != nil {
		return nil, err
	}

	return result, nil
}

// within reports whether path is dir or lies below it, after resolving
// symlinks in the parts that exist.
func within(dir, path string) (bool, error) {
	d, err := resolve(dir)
	if err != nil {
		return false, err
	}
	p, err := resolve(path)
	if err != nil {
		return false, err
	}
	rel, err := filepath.Rel(d, p)
	if err != nil {
		return false, nil
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))), nil
}

// resolve makes path absolute and evaluates symlinks in its longest
// existing prefix.
func resolve(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}
	var rest []string
	for cur := abs; ; {
		if real, err := filepath.EvalSymlinks(cur); err == nil {
			return filepath.Join(append([]string{real}, rest...)...), nil
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return abs, nil
		}
		rest = append([]string{filepath.Base(cur)}, rest...)
		cur = parent
	}
}
