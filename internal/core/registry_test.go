package core

import (
	"fmt"
	"sync"
	"testing"

	"github.com/sliink/l2gen/internal/model"
	"github.com/stretchr/testify/assert"
)

// mockProcessor implements the InputProcessor interface for testing
type mockProcessor struct {
	name       string
	reader     string
	params     map[string]interface{}
	configured map[string]interface{}
	configErr  error
	timeErr    error
	preFunc    func(ds *model.Dataset) (*model.Dataset, error)
	postFunc   func(ds *model.Dataset) (*model.Dataset, error)
	preCalls   int
	postCalls  int
}

func newMockProcessor(name string) *mockProcessor {
	return &mockProcessor{name: name, reader: "yaml"}
}

func (m *mockProcessor) Name() string {
	return m.name
}

func (m *mockProcessor) Description() string {
	return "Mock " + m.name
}

func (m *mockProcessor) InputReader() string {
	return m.reader
}

func (m *mockProcessor) InputReaderParams() map[string]interface{} {
	return m.params
}

func (m *mockProcessor) Configure(params map[string]interface{}) error {
	if m.configErr != nil {
		return m.configErr
	}
	m.configured = params
	return nil
}

func (m *mockProcessor) GetReprojectionInfo(*model.Dataset) model.ReprojectionInfo {
	return model.ReprojectionInfo{XYVarNames: [2]string{"lon", "lat"}, XYCRS: model.CRSWKTEPSG4326}
}

func (m *mockProcessor) GetTimeRange(*model.Dataset) (model.TimeRange, error) {
	if m.timeErr != nil {
		return model.TimeRange{}, m.timeErr
	}
	return model.TimeRange{Start: 1, End: 2}, nil
}

func (m *mockProcessor) PreProcess(ds *model.Dataset) (*model.Dataset, error) {
	m.preCalls++
	if m.preFunc != nil {
		return m.preFunc(ds)
	}
	return ds.Copy(), nil
}

func (m *mockProcessor) PostProcess(ds *model.Dataset) (*model.Dataset, error) {
	m.postCalls++
	if m.postFunc != nil {
		return m.postFunc(ds)
	}
	return ds.Copy(), nil
}

func TestNewProcessorRegistry(t *testing.T) {
	registry := NewProcessorRegistry()

	assert.NotNil(t, registry)
	assert.NotNil(t, registry.processors)
	assert.Empty(t, registry.Names())
}

func TestRegister(t *testing.T) {
	registry := NewProcessorRegistry()
	first := newMockProcessor("p1")

	t.Run("Register adds processor to registry", func(t *testing.T) {
		registry.Register("p1", first)
		registry.Register("p2", newMockProcessor("p2"))
		assert.Len(t, registry.processors, 2)
		assert.Contains(t, registry.processors, "p1")
	})

	t.Run("Register replaces processor with the same name", func(t *testing.T) {
		second := newMockProcessor("p1")
		registry.Register("p1", second)

		p, exists := registry.Get("p1")
		assert.True(t, exists)
		assert.Same(t, second, p)
		assert.Len(t, registry.processors, 2)
	})
}

func TestGet(t *testing.T) {
	registry := NewProcessorRegistry()
	p1 := newMockProcessor("p1")
	registry.Register("p1", p1)

	t.Run("Get returns existing processor", func(t *testing.T) {
		p, exists := registry.Get("p1")
		assert.True(t, exists)
		assert.Same(t, p1, p)
	})

	t.Run("Get returns false for nonexistent processor", func(t *testing.T) {
		_, exists := registry.Get("nonexistent")
		assert.False(t, exists)
	})
}

func TestNamesAndAll(t *testing.T) {
	registry := NewProcessorRegistry()
	for _, name := range []string{"c", "a", "b"} {
		registry.Register(name, newMockProcessor(name))
	}

	assert.Equal(t, []string{"a", "b", "c"}, registry.Names())

	all := registry.All()
	assert.Len(t, all, 3)
	for i, name := range []string{"a", "b", "c"} {
		assert.Equal(t, name, all[i].Name())
	}
}

func TestRegistryConcurrentAccess(t *testing.T) {
	registry := NewProcessorRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("p%d", i%3)
			registry.Register(name, newMockProcessor(name))
			registry.Get(name)
			registry.Names()
		}(i)
	}
	wg.Wait()

	assert.Equal(t, []string{"p0", "p1", "p2"}, registry.Names())
}
