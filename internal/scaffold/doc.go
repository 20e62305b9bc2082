// Package scaffold materializes a new project from a template tree. It powers
// the root command: the template is mirrored file-by-file into ./<name>, the
// _gitignore template is activated as .gitignore, and the package.json name
// is rewritten to the project name.
package scaffold
