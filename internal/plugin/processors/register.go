package processors

import (
	"github.com/sliink/l2gen/internal/model"
	"github.com/sliink/l2gen/internal/plugin"
)

var creators = []func() model.InputProcessor{
	func() model.InputProcessor { return NewSnapOlciHighrocL2Processor() },
	func() model.InputProcessor { return NewSnapOlciCyanoAlertL2Processor() },
	func() model.InputProcessor { return NewCMEMSProcessor() },
}

// InitPlugin registers one default-configured instance of every processor.
// Calling it again replaces the registered instances.
func InitPlugin(reg model.Registry) {
	for _, create := range creators {
		p := create()
		reg.Register(p.Name(), p)
	}
}

// RegisterCreators makes every processor available from factory
func RegisterCreators(factory *plugin.ProcessorFactory) {
	for _, create := range creators {
		factory.RegisterCreator(create().Name(), create)
	}
}
