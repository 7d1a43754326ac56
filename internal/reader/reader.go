// Package reader opens input files as in-memory datasets.
//
// Readers are registered by kind, the same kind an input processor reports
// from InputReader. The manifest readers load datasets described as JSON or
// YAML documents; other kinds must be registered by the embedding program.
package reader

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/sliink/l2gen/internal/model"
)

const (
	// JSONKind reads JSON dataset manifests
	JSONKind = "json"
	// YAMLKind reads YAML dataset manifests
	YAMLKind = "yaml"
)

// ErrUnknownReader is returned when no reader is registered for a kind
var ErrUnknownReader = errors.New("unknown input reader")

// Opener opens the file at path, applying reader params
type Opener func(path string, params map[string]interface{}) (*model.Dataset, error)

var (
	openers = map[string]Opener{
		JSONKind: openJSON,
		YAMLKind: openYAML,
	}
	openersMu sync.RWMutex
)

var manifestKinds = map[string]string{
	".json": JSONKind,
	".yaml": YAMLKind,
	".yml":  YAMLKind,
}

// Register makes an opener available under kind, replacing any previous one
func Register(kind string, opener Opener) {
	openersMu.Lock()
	defer openersMu.Unlock()
	openers[kind] = opener
}

// Kinds returns the registered reader kinds in sorted order
func Kinds() []string {
	openersMu.RLock()
	defer openersMu.RUnlock()

	kinds := make([]string, 0, len(openers))
	for kind := range openers {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

// Open opens path with the reader registered under kind
func Open(kind, path string, params map[string]interface{}) (*model.Dataset, error) {
	openersMu.RLock()
	opener, ok := openers[kind]
	openersMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %s)", ErrUnknownReader, kind, strings.Join(Kinds(), ", "))
	}

	logrus.WithFields(logrus.Fields{
		"reader": kind,
		"path":   path,
	}).Debug("Opening input")

	ds, err := opener(path, params)
	if err != nil {
		return nil, fmt.Errorf("cannot open %s: %w", path, err)
	}
	return ds, nil
}

// OpenFor opens path with a manifest reader if its extension names one,
// otherwise with the reader registered under kind
func OpenFor(path, kind string, params map[string]interface{}) (*model.Dataset, error) {
	if manifestKind, ok := manifestKinds[strings.ToLower(filepath.Ext(path))]; ok {
		kind = manifestKind
	}
	return Open(kind, path, params)
}
