// Package manifest reads and rewrites the package.json of a generated project.
// RewriteName replaces the "name" field while keeping every other field and
// its position, and Validate checks the result against an embedded JSON
// Schema carrying the npm package naming rules.
package manifest
