package processors

import (
	"errors"
	"fmt"

	"github.com/spf13/cast"

	"github.com/sliink/l2gen/internal/model"
	"github.com/sliink/l2gen/internal/plugin"
	"github.com/sliink/l2gen/internal/timecoord"
	"github.com/sliink/l2gen/internal/transexpr"
	"github.com/sliink/l2gen/internal/vectorize"
)

const (
	// SnapOlciHighrocL2Name is the registry key of the HIGHROC processor
	SnapOlciHighrocL2Name = "snap-olci-highroc-l2"
	// SnapOlciCyanoAlertL2Name is the registry key of the CyanoAlert processor
	SnapOlciCyanoAlertL2Name = "snap-olci-cyanoalert-l2"

	// NetCDF4Reader is the reader kind of all processors in this package
	NetCDF4Reader = "netcdf4"

	// XYGCPStepParam names the GCP step override
	XYGCPStepParam = "xy_gcp_step"

	defaultXYGCPStep = 5
)

// ErrMissingTimeRange is returned for SNAP L2 inputs without start/stop time
var ErrMissingTimeRange = errors.New("illegal L2 input: missing start/stop time")

var snapParamSpecs = []plugin.ParamSpec{
	plugin.PositiveIntParam(XYGCPStepParam),
}

// SnapProcessor reads SNAP Level-2 NetCDF products. The OLCI HIGHROC and
// CyanoAlert variants differ only in name and description.
type SnapProcessor struct {
	plugin.BaseProcessor
	params plugin.Params
}

// NewSnapOlciHighrocL2Processor creates the SNAP Sentinel-3 OLCI HIGHROC L2 processor
func NewSnapOlciHighrocL2Processor() *SnapProcessor {
	return newSnapProcessor(SnapOlciHighrocL2Name, "SNAP Sentinel-3 OLCI HIGHROC Level-2 NetCDF inputs")
}

// NewSnapOlciCyanoAlertL2Processor creates the SNAP Sentinel-3 OLCI CyanoAlert L2 processor
func NewSnapOlciCyanoAlertL2Processor() *SnapProcessor {
	return newSnapProcessor(SnapOlciCyanoAlertL2Name, "SNAP Sentinel-3 OLCI CyanoAlert Level-2 NetCDF inputs")
}

func newSnapProcessor(name, description string) *SnapProcessor {
	return &SnapProcessor{
		BaseProcessor: plugin.NewBaseProcessor(name, description, NetCDF4Reader),
		params:        plugin.Params{},
	}
}

// InputReaderParams returns the netcdf4 reader options
func (p *SnapProcessor) InputReaderParams() map[string]interface{} {
	return map[string]interface{}{
		model.ReaderDecodeCF:     true,
		model.ReaderDecodeCoords: true,
		model.ReaderDecodeTimes:  false,
	}
}

// Configure accepts xy_gcp_step, a positive integer or nil to reset it.
// State is left unchanged when an error is returned.
func (p *SnapProcessor) Configure(params map[string]interface{}) error {
	next, err := plugin.ApplyParams(p.params, params, snapParamSpecs)
	if err != nil {
		return err
	}
	p.params = next
	return nil
}

// XYGCPStep returns the configured GCP step override
func (p *SnapProcessor) XYGCPStep() (int, bool) {
	return p.params.Int(XYGCPStepParam)
}

// GetReprojectionInfo returns the fixed geolocation of SNAP L2 products
func (p *SnapProcessor) GetReprojectionInfo(*model.Dataset) model.ReprojectionInfo {
	step, ok := p.XYGCPStep()
	if !ok {
		step = defaultXYGCPStep
	}
	return model.ReprojectionInfo{
		XYVarNames:   [2]string{"lon", "lat"},
		XYTPVarNames: [2]string{"TP_longitude", "TP_latitude"},
		XYCRS:        model.CRSWKTEPSG4326,
		XYGCPStep:    step,
	}
}

// GetTimeRange reads time_coverage_start/end, falling back to start_date/stop_date
func (p *SnapProcessor) GetTimeRange(ds *model.Dataset) (model.TimeRange, error) {
	start, end, ok := coverageAttrs(ds)
	if !ok {
		var hasStart, hasEnd bool
		start, hasStart = stringAttr(ds, "start_date")
		end, hasEnd = stringAttr(ds, "stop_date")
		if !hasEnd {
			end, hasEnd = start, hasStart
		}
		if !hasStart || !hasEnd {
			return model.TimeRange{}, ErrMissingTimeRange
		}
	}
	return parseTimeRange(start, end)
}

// PreProcess translates SNAP band-maths expression attributes
func (p *SnapProcessor) PreProcess(ds *model.Dataset) (*model.Dataset, error) {
	return transexpr.TranslateAttributes(ds)
}

// PostProcess stacks the waveband variables into spectra
func (p *SnapProcessor) PostProcess(ds *model.Dataset) (*model.Dataset, error) {
	return vectorize.VectorizeWavebands(ds.Copy(), newSnapBandCoordVar)
}

// newSnapBandCoordVar fixes HIGHROC OLCI L2 products where bands 20 and 21
// both claim 940 nm; the last one is 1020 nm.
func newSnapBandCoordVar(bandDimName string, bandValues []float64) *model.Variable {
	n := len(bandValues)
	if n >= 2 && bandValues[n-2] == bandValues[n-1] && bandValues[n-1] == 940. {
		bandValues = append([]float64(nil), bandValues...)
		bandValues[n-1] = 1020.
	}
	return vectorize.NewBandCoordVar(bandDimName, bandValues)
}

// coverageAttrs reads the ACDD time_coverage_start/end attributes; end defaults to start
func coverageAttrs(ds *model.Dataset) (string, string, bool) {
	start, ok := stringAttr(ds, "time_coverage_start")
	if !ok {
		return "", "", false
	}
	end, ok := stringAttr(ds, "time_coverage_end")
	if !ok {
		end = start
	}
	return start, end, true
}

// stringAttr returns a global attribute as string; nil counts as absent
func stringAttr(ds *model.Dataset, name string) (string, bool) {
	raw, ok := ds.Attr(name)
	if !ok || raw == nil {
		return "", false
	}
	s, err := cast.ToStringE(raw)
	if err != nil {
		return fmt.Sprintf("%v", raw), true
	}
	return s, true
}

func parseTimeRange(start, end string) (model.TimeRange, error) {
	t1, err := timecoord.ToDaysSince1970(start)
	if err != nil {
		return model.TimeRange{}, fmt.Errorf("invalid start time: %w", err)
	}
	t2, err := timecoord.ToDaysSince1970(end)
	if err != nil {
		return model.TimeRange{}, fmt.Errorf("invalid end time: %w", err)
	}
	return model.TimeRange{Start: t1, End: t2}, nil
}
