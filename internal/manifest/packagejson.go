package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// FileName is the manifest file rewritten in every generated project.
const FileName = "package.json"

// ParseError reports a manifest that is not a valid JSON object.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// field is one top-level member of a JSON object, in document order.
type field struct {
	key   string
	value json.RawMessage
}

// RewriteName sets the "name" field of the manifest at path and rewrites the
// file with 2-space indentation. It reports false with no error when the file
// does not exist. A file that does not hold a JSON object yields a
// *ParseError and is left untouched.
func RewriteName(path, name string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("reading %s: %w", path, err)
	}

	out, err := SetName(data, name)
	if err != nil {
		return false, &ParseError{Path: path, Err: err}
	}

	if err := os.WriteFile(path, out, 0644); err != nil {
		return false, fmt.Errorf("writing %s: %w", path, err)
	}
	return true, nil
}

// SetName returns data with its top-level "name" member replaced by name.
// Other members keep their order and values. A missing "name" is appended.
func SetName(data []byte, name string) ([]byte, error) {
	fields, err := decodeObject(data)
	if err != nil {
		return nil, err
	}

	encodedName, err := marshalNoEscape(name)
	if err != nil {
		return nil, err
	}

	replaced := false
	for i := range fields {
		if fields[i].key == "name" {
			fields[i].value = encodedName
			replaced = true
		}
	}
	if !replaced {
		fields = append(fields, field{key: "name", value: encodedName})
	}

	return encodeObject(fields)
}

// decodeObject reads a single top-level JSON object into its members.
// Duplicate keys keep the position of their first occurrence and the value
// of their last.
func decodeObject(data []byte) ([]field, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return nil, errors.New("empty document")
		}
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("top-level value must be a JSON object, got %v", tok)
	}

	var fields []field
	index := make(map[string]int)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected object key %v", keyTok)
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}

		if i, seen := index[key]; seen {
			fields[i].value = value
			continue
		}
		index[key] = len(fields)
		fields = append(fields, field{key: key, value: value})
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("unexpected data after top-level object")
	}

	return fields, nil
}

// encodeObject writes fields as an indented JSON object followed by a newline.
func encodeObject(fields []field) ([]byte, error) {
	var compact bytes.Buffer
	compact.WriteByte('{')
	for i, f := range fields {
		if i > 0 {
			compact.WriteByte(',')
		}
		key, err := marshalNoEscape(f.key)
		if err != nil {
			return nil, err
		}
		compact.Write(key)
		compact.WriteByte(':')
		compact.Write(f.value)
	}
	compact.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", "  "); err != nil {
		return nil, err
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

// marshalNoEscape encodes v without HTML escaping so names like "a&b"
// survive as written.
func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
