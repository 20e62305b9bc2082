// Package session drives one interactive run of the CLI: it asks for the
// project name and the setup choices, materializes the project and runs the
// optional setup steps, rendering progress as it goes.
//
// The flow is linear:
//
//	Intro → AskName → AskInstall → AskGit → Materialize → Install → InitVCS → Outro
//
// Install and InitVCS run only when chosen. A cancelled prompt or a failed
// materialization moves to Aborted and ends the run; a failed setup step only
// produces a warning.
package session
