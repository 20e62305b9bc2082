package scaffold

import (
	"embed"
	"io/fs"
)

// The all: prefix keeps _gitignore and other dot/underscore files.
//
//go:embed all:template
var templateFS embed.FS

const templateRoot = "template"

// DefaultTemplate returns the TanStack Router + Vite starter bundled into
// the binary.
func DefaultTemplate() fs.FS {
	sub, err := fs.Sub(templateFS, templateRoot)
	if err != nil {
		panic(err)
	}
	return sub
}
