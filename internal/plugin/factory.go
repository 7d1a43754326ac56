package plugin

import (
	"errors"
	"fmt"
	"sort"

	"github.com/sliink/l2gen/internal/model"
)

// ErrUnknownProcessor is returned when no creator is registered under a name
var ErrUnknownProcessor = errors.New("unknown input processor")

// ProcessorFactory creates fresh input processor instances by name
type ProcessorFactory struct {
	creators map[string]func() model.InputProcessor
}

// NewProcessorFactory creates a new processor factory
func NewProcessorFactory() *ProcessorFactory {
	return &ProcessorFactory{
		creators: make(map[string]func() model.InputProcessor),
	}
}

// RegisterCreator registers a processor creator under name
func (f *ProcessorFactory) RegisterCreator(name string, creator func() model.InputProcessor) {
	f.creators[name] = creator
}

// Names returns the registered processor names in sorted order
func (f *ProcessorFactory) Names() []string {
	names := make([]string, 0, len(f.creators))
	for name := range f.creators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Create creates a default-configured processor
func (f *ProcessorFactory) Create(name string) (model.InputProcessor, error) {
	creator, exists := f.creators[name]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProcessor, name)
	}
	return creator(), nil
}

// CreateConfigured creates a processor and applies params to it
func (f *ProcessorFactory) CreateConfigured(name string, params map[string]interface{}) (model.InputProcessor, error) {
	p, err := f.Create(name)
	if err != nil {
		return nil, err
	}
	if err := p.Configure(params); err != nil {
		return nil, err
	}
	return p, nil
}
