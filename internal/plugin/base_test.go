package plugin

import (
	"testing"

	"github.com/sliink/l2gen/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBaseProcessor(t *testing.T) {
	t.Run("Creates processor with correct identity", func(t *testing.T) {
		p := NewBaseProcessor("test-proc", "Test processor", "netcdf4")

		assert.Equal(t, "test-proc", p.Name())
		assert.Equal(t, "Test processor", p.Description())
		assert.Equal(t, "netcdf4", p.InputReader())
	})
}

// fakeProcessor embeds BaseProcessor the way concrete processors do
type fakeProcessor struct {
	BaseProcessor
	params Params
}

func (p *fakeProcessor) InputReaderParams() map[string]interface{} { return nil }

func (p *fakeProcessor) Configure(params map[string]interface{}) error {
	next, err := ApplyParams(p.params, params, []ParamSpec{PositiveIntParam("step")})
	if err != nil {
		return err
	}
	p.params = next
	return nil
}

func (p *fakeProcessor) GetReprojectionInfo(*model.Dataset) model.ReprojectionInfo {
	return model.ReprojectionInfo{}
}

func (p *fakeProcessor) GetTimeRange(*model.Dataset) (model.TimeRange, error) {
	return model.TimeRange{}, nil
}

func (p *fakeProcessor) PreProcess(ds *model.Dataset) (*model.Dataset, error)  { return ds.Copy(), nil }
func (p *fakeProcessor) PostProcess(ds *model.Dataset) (*model.Dataset, error) { return ds.Copy(), nil }

func newFakeProcessor() model.InputProcessor {
	return &fakeProcessor{BaseProcessor: NewBaseProcessor("fake", "Fake", "netcdf4")}
}

func TestProcessorFactory(t *testing.T) {
	factory := NewProcessorFactory()
	factory.RegisterCreator("fake", newFakeProcessor)

	t.Run("Create returns fresh instances", func(t *testing.T) {
		p1, err := factory.Create("fake")
		require.NoError(t, err)
		p2, err := factory.Create("fake")
		require.NoError(t, err)
		assert.NotSame(t, p1, p2)
		assert.Equal(t, "fake", p1.Name())
	})

	t.Run("Create fails for unknown names", func(t *testing.T) {
		_, err := factory.Create("unknown")
		assert.EqualError(t, err, "unknown input processor: unknown")
		assert.ErrorIs(t, err, ErrUnknownProcessor)
	})

	t.Run("CreateConfigured applies params", func(t *testing.T) {
		p, err := factory.CreateConfigured("fake", map[string]interface{}{"step": 3})
		require.NoError(t, err)
		assert.Equal(t, Params{"step": 3}, p.(*fakeProcessor).params)

		_, err = factory.CreateConfigured("fake", map[string]interface{}{"other": 3})
		assert.ErrorIs(t, err, ErrUnexpectedParameters)
	})

	t.Run("Names are sorted", func(t *testing.T) {
		factory.RegisterCreator("alpha", newFakeProcessor)
		assert.Equal(t, []string{"alpha", "fake"}, factory.Names())
	})
}
