// Package cli defines the Cobra command tree for create-ts-router-vite. The
// root command runs the interactive project session; version, config and
// doctor are registered as subcommands. Commands only parse flags, resolve
// settings and wire collaborators; the work happens in the internal packages.
package cli
