package manifest

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/Masterminds/semver/v3"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/package.schema.json
var schemaBytes []byte

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
	printer        = message.NewPrinter(language.English)
)

// ValidationResult contains the outcome of a manifest check.
type ValidationResult struct {
	Valid  bool
	Issues []ValidationIssue
}

// ValidationIssue represents a single problem found in the manifest.
type ValidationIssue struct {
	Path    string // Instance location (e.g., "/name")
	Message string // Human-readable error message
	Keyword string // Schema keyword that failed, or "semver"
}

// String formats the issue as "<path>: <message>".
func (i ValidationIssue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

// getSchema compiles the embedded JSON schema once and returns it.
func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("package.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("package.schema.json")
		if compileErr != nil {
			compileErr = fmt.Errorf("compiling schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// Validate checks raw package.json bytes against the embedded schema and
// verifies that a "version" member, when it is a string, is strict semver.
// The error return is for malformed JSON or schema compilation failures;
// validation problems are returned in the ValidationResult.
func Validate(data []byte) (*ValidationResult, error) {
	schema, err := getSchema()
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	var issues []ValidationIssue
	if err := schema.Validate(inst); err != nil {
		validationErr, ok := err.(*jsonschema.ValidationError)
		if !ok {
			return nil, fmt.Errorf("unexpected validation error type: %w", err)
		}
		issues = append(issues, extractIssues(validationErr)...)
	}

	if issue, ok := checkVersion(data); !ok {
		issues = append(issues, issue)
	}

	return &ValidationResult{
		Valid:  len(issues) == 0,
		Issues: issues,
	}, nil
}

// ValidateFile reads a file and validates it.
func ValidateFile(path string) (*ValidationResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Validate(data)
}

// checkVersion reports whether the "version" member is absent, not a string
// (the schema reports that case), or a valid semantic version.
func checkVersion(data []byte) (ValidationIssue, bool) {
	var doc struct {
		Version json.RawMessage `json:"version"`
	}
	if err := json.Unmarshal(data, &doc); err != nil || len(doc.Version) == 0 {
		return ValidationIssue{}, true
	}

	var version string
	if err := json.Unmarshal(doc.Version, &version); err != nil {
		return ValidationIssue{}, true
	}

	if _, err := semver.StrictNewVersion(version); err != nil {
		return ValidationIssue{
			Path:    "/version",
			Message: fmt.Sprintf("%q is not a valid semantic version", version),
			Keyword: "semver",
		}, false
	}
	return ValidationIssue{}, true
}

// extractIssues walks the ValidationError tree and returns leaf-level issues.
func extractIssues(ve *jsonschema.ValidationError) []ValidationIssue {
	var issues []ValidationIssue
	collectValidationIssues(ve, &issues)

	if len(issues) == 0 {
		return []ValidationIssue{{
			Message: ve.Error(),
		}}
	}
	return deduplicateIssues(issues)
}

// collectValidationIssues recursively walks the error tree to find leaf errors
// with specific property information.
func collectValidationIssues(ve *jsonschema.ValidationError, issues *[]ValidationIssue) {
	if len(ve.Causes) == 0 {
		path := "/" + strings.Join(ve.InstanceLocation, "/")
		if len(ve.InstanceLocation) == 0 {
			path = ""
		}

		keyword := ""
		if ve.ErrorKind != nil {
			kwPath := ve.ErrorKind.KeywordPath()
			if len(kwPath) > 0 {
				keyword = kwPath[len(kwPath)-1]
			}
		}

		msg := ""
		if ve.ErrorKind != nil {
			msg = ve.ErrorKind.LocalizedString(printer)
		}

		// Skip generic container errors that aren't informative.
		if keyword == "allOf" || keyword == "$ref" || keyword == "" {
			return
		}

		*issues = append(*issues, ValidationIssue{
			Path:    path,
			Message: msg,
			Keyword: keyword,
		})
		return
	}

	for _, cause := range ve.Causes {
		collectValidationIssues(cause, issues)
	}
}

// deduplicateIssues removes duplicate issues (same path + keyword + message).
func deduplicateIssues(issues []ValidationIssue) []ValidationIssue {
	seen := make(map[string]bool)
	var result []ValidationIssue
	for _, issue := range issues {
		key := issue.Path + "|" + issue.Keyword + "|" + issue.Message
		if !seen[key] {
			seen[key] = true
			result = append(result, issue)
		}
	}
	return result
}
