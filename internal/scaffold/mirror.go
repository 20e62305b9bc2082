package scaffold

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

// MirrorDir recursively copies srcDir into destDir. See Mirror.
func MirrorDir(srcDir, destDir string) ([]string, error) {
	return Mirror(os.DirFS(srcDir), destDir)
}

// Mirror recursively copies every file and directory of src into dest,
// creating dest and any missing parents. Files are copied byte-for-byte and
// overwrite existing files of the same name. It returns the slash-separated
// paths of the files written, relative to dest. Nothing is rolled back when
// a copy fails part-way.
func Mirror(src fs.FS, dest string) ([]string, error) {
	var files []string
	err := mirrorDir(src, ".", dest, &files)
	return files, err
}

func mirrorDir(src fs.FS, dir, dest string, files *[]string) error {
	if err := os.MkdirAll(dest, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", dest, err)
	}

	entries, err := fs.ReadDir(src, dir)
	if err != nil {
		return fmt.Errorf("reading template directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		srcPath := path.Join(dir, entry.Name())
		dstPath := filepath.Join(dest, entry.Name())

		// Stat follows symlinks, so a link to a directory is recursed into.
		info, err := fs.Stat(src, srcPath)
		if err != nil {
			return fmt.Errorf("inspecting template entry %s: %w", srcPath, err)
		}

		if info.IsDir() {
			if err := mirrorDir(src, srcPath, dstPath, files); err != nil {
				return err
			}
			continue
		}

		if err := copyFile(src, srcPath, dstPath); err != nil {
			return err
		}
		*files = append(*files, srcPath)
	}

	return nil
}

// copyFile copies a single file out of src to dst.
func copyFile(src fs.FS, name, dst string) error {
	data, err := fs.ReadFile(src, name)
	if err != nil {
		return fmt.Errorf("reading template file %s: %w", name, err)
	}
	if err := os.WriteFile(dst, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", dst, err)
	}
	return nil
}
