package core

import (
	"sort"
	"sync"

	"github.com/sliink/l2gen/internal/model"
)

// ProcessorRegistry keeps track of available input processors
type ProcessorRegistry struct {
	processors map[string]model.InputProcessor
	mutex      sync.RWMutex
}

// NewProcessorRegistry creates a new processor registry
func NewProcessorRegistry() *ProcessorRegistry {
	return &ProcessorRegistry{
		processors: make(map[string]model.InputProcessor),
	}
}

// Register adds a processor, replacing any processor with the same name
func (r *ProcessorRegistry) Register(name string, processor model.InputProcessor) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.processors[name] = processor
}

// Get retrieves a processor by name
func (r *ProcessorRegistry) Get(name string) (model.InputProcessor, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	p, exists := r.processors[name]
	return p, exists
}

// Names returns the registered processor names in sorted order
func (r *ProcessorRegistry) Names() []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	names := make([]string, 0, len(r.processors))
	for name := range r.processors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All retrieves all registered processors ordered by name
func (r *ProcessorRegistry) All() []model.InputProcessor {
	names := r.Names()

	r.mutex.RLock()
	defer r.mutex.RUnlock()

	result := make([]model.InputProcessor, 0, len(names))
	for _, name := range names {
		if p, ok := r.processors[name]; ok {
			result = append(result, p)
		}
	}
	return result
}
