package plugin

// BaseProcessor provides the identity shared by all input processors
type BaseProcessor struct {
	name        string
	description string
	inputReader string
}

// NewBaseProcessor creates a new base processor
func NewBaseProcessor(name, description, inputReader string) BaseProcessor {
	return BaseProcessor{
		name:        name,
		description: description,
		inputReader: inputReader,
	}
}

// Name returns the processor's unique registry key
func (p *BaseProcessor) Name() string {
	return p.name
}

// Description returns the processor's human-readable description
func (p *BaseProcessor) Description() string {
	return p.description
}

// InputReader returns the reader kind used to open inputs
func (p *BaseProcessor) InputReader() string {
	return p.inputReader
}
