// Package catalog discovers script descriptors from a directory of JSON files.
package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jbvmio/scripthub"
	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"
)

// DescriptorExt is the extension a file must carry to be read as a descriptor.
const DescriptorExt = `.json`

// Descriptor describes one runnable script. Each field holds the raw JSON value
// from the source file and is omitted when the file has no such key.
type Descriptor struct {
	Name        json.RawMessage `json:"name,omitempty"`
	Description json.RawMessage `json:"description,omitempty"`
	ScriptPath  json.RawMessage `json:"scriptPath,omitempty"`
	Arguments   json.RawMessage `json:"arguments,omitempty"`
}

var errNotObject = errors.New("descriptor must be a JSON object")

// Text returns raw as plain text: JSON strings are unquoted, any other value
// is returned as written.
func Text(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// Loader reads descriptors from a single directory. Nothing is cached; every
// call to ListScripts reads the directory again.
type Loader struct {
	dir    string
	schema *gojsonschema.Schema
	logger *zap.Logger
}

// New returns a Loader for dir. When validate is set every descriptor must
// also satisfy the descriptor schema.
func New(dir string, validate bool, L *zap.Logger) (*Loader, error) {
	l := &Loader{
		dir:    dir,
		logger: L.With(zap.String(`process`, `catalog`)),
	}
	if validate {
		s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(descriptorSchema))
		if err != nil {
			return nil, fmt.Errorf("error compiling descriptor schema: %w", err)
		}
		l.schema = s
	}
	return l, nil
}

// Dir returns the descriptor directory.
func (l *Loader) Dir() string {
	return l.dir
}

// ListScripts returns every descriptor in the directory. A single unreadable
// or malformed file fails the whole listing.
func (l *Loader) ListScripts() ([]Descriptor, error) {
	files, err := scripthub.GetDirFiles(l.dir)
	if err != nil {
		return nil, fmt.Errorf("error reading descriptor directory %q: %w", l.dir, err)
	}
	scripts := make([]Descriptor, 0, len(files))
	for _, f := range files {
		if filepath.Ext(f.Name) != DescriptorExt {
			continue
		}
		d, err := l.load(f.FullPath)
		if err != nil {
			return nil, err
		}
		scripts = append(scripts, d)
	}
	l.logger.Debug("descriptors loaded", zap.String(`directory`, l.dir), zap.Int(`scripts`, len(scripts)))
	return scripts, nil
}

func (l *Loader) load(path string) (Descriptor, error) {
	var d Descriptor
	b, err := os.ReadFile(path)
	if err != nil {
		return d, fmt.Errorf("error reading descriptor %q: %w", path, err)
	}
	if l.schema != nil {
		if err := l.validate(b); err != nil {
			return d, fmt.Errorf("invalid descriptor %q: %w", path, err)
		}
	}
	if err := json.Unmarshal(b, &d); err != nil {
		return d, fmt.Errorf("error parsing descriptor %q: %w", path, err)
	}
	if !bytes.HasPrefix(bytes.TrimSpace(b), []byte(`{`)) {
		return d, fmt.Errorf("error parsing descriptor %q: %w", path, errNotObject)
	}
	return d, nil
}

func (l *Loader) validate(b []byte) error {
	result, err := l.schema.Validate(gojsonschema.NewBytesLoader(b))
	if err != nil {
		return err
	}
	if result.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		msgs = append(msgs, desc.String())
	}
	return fmt.Errorf("schema validation failed: %s", strings.Join(msgs, `; `))
}
