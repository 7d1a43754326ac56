package core

import (
	"time"

	"github.com/sliink/l2gen/internal/model"
	"github.com/sliink/l2gen/internal/plugin"
	"github.com/sliink/l2gen/internal/plugin/processors"
)

// ProcessorInfo describes a registered input processor
type ProcessorInfo struct {
	Name              string                 `json:"name"`
	Description       string                 `json:"description"`
	InputReader       string                 `json:"input_reader"`
	InputReaderParams map[string]interface{} `json:"input_reader_params"`
}

// NewProcessorInfo describes p
func NewProcessorInfo(p model.InputProcessor) ProcessorInfo {
	return ProcessorInfo{
		Name:              p.Name(),
		Description:       p.Description(),
		InputReader:       p.InputReader(),
		InputReaderParams: p.InputReaderParams(),
	}
}

// HealthStatus is reported by the health endpoint
type HealthStatus struct {
	Status     string    `json:"status"`
	Processors int       `json:"processors"`
	StartedAt  time.Time `json:"started_at"`
	Uptime     string    `json:"uptime"`
}

// App wires the configuration to the processor registry and factory
type App struct {
	Config    *Config
	Registry  *ProcessorRegistry
	Factory   *plugin.ProcessorFactory
	startedAt time.Time
}

// NewApp creates an app with all built-in processors registered
func NewApp(c *Config) *App {
	registry := NewProcessorRegistry()
	processors.InitPlugin(registry)

	factory := plugin.NewProcessorFactory()
	processors.RegisterCreators(factory)

	return &App{
		Config:    configMergeDefault(c),
		Registry:  registry,
		Factory:   factory,
		startedAt: time.Now(),
	}
}

// Pipeline returns a pipeline that creates a private processor per run,
// so it is safe for concurrent use
func (a *App) Pipeline() *GenPipeline {
	return NewFactoryGenPipeline(a.Factory)
}

// Processors describes all registered processors ordered by name
func (a *App) Processors() []ProcessorInfo {
	all := a.Registry.All()
	infos := make([]ProcessorInfo, 0, len(all))
	for _, p := range all {
		infos = append(infos, NewProcessorInfo(p))
	}
	return infos
}

// Processor describes the processor registered under name
func (a *App) Processor(name string) (ProcessorInfo, bool) {
	p, exists := a.Registry.Get(name)
	if !exists {
		return ProcessorInfo{}, false
	}
	return NewProcessorInfo(p), true
}

// Health reports the app status
func (a *App) Health() HealthStatus {
	return HealthStatus{
		Status:     "ok",
		Processors: len(a.Registry.Names()),
		StartedAt:  a.startedAt,
		Uptime:     time.Since(a.startedAt).Round(time.Second).String(),
	}
}
