package processors

import (
	"errors"
	"math"

	"github.com/spf13/cast"

	"github.com/sliink/l2gen/internal/model"
	"github.com/sliink/l2gen/internal/plugin"
	"github.com/sliink/l2gen/internal/timecoord"
)

// CMEMSName is the registry key of the CMEMS processor
const CMEMSName = "cmems"

// ErrMissingTimeCoverage is returned for CMEMS inputs without any time information
var ErrMissingTimeCoverage = errors.New("illegal CMEMS input: missing time coverage")

// CMEMSProcessor reads single-scene CMEMS NetCDF/CF products. Geolocation and
// time are taken from CF conventions; it declares no parameters.
type CMEMSProcessor struct {
	plugin.BaseProcessor
	params plugin.Params
}

// NewCMEMSProcessor creates the CMEMS processor
func NewCMEMSProcessor() *CMEMSProcessor {
	return &CMEMSProcessor{
		BaseProcessor: plugin.NewBaseProcessor(CMEMSName, "Single-scene daily or hourly CMEMS NetCDF/CF inputs", NetCDF4Reader),
		params:        plugin.Params{},
	}
}

// InputReaderParams returns the netcdf4 reader options
func (p *CMEMSProcessor) InputReaderParams() map[string]interface{} {
	return map[string]interface{}{
		model.ReaderDecodeCF:     true,
		model.ReaderDecodeCoords: true,
		model.ReaderDecodeTimes:  true,
	}
}

// Configure rejects every parameter name
func (p *CMEMSProcessor) Configure(params map[string]interface{}) error {
	next, err := plugin.ApplyParams(p.params, params, nil)
	if err != nil {
		return err
	}
	p.params = next
	return nil
}

// GetReprojectionInfo locates the CF longitude/latitude variables
func (p *CMEMSProcessor) GetReprojectionInfo(ds *model.Dataset) model.ReprojectionInfo {
	return model.ReprojectionInfo{
		XYVarNames: [2]string{
			findCFVar(ds, "longitude", "lon", "longitude"),
			findCFVar(ds, "latitude", "lat", "latitude"),
		},
		XYCRS: model.CRSWKTEPSG4326,
	}
}

// GetTimeRange reads time_coverage_start/end, else time_bnds, else the time coordinate
func (p *CMEMSProcessor) GetTimeRange(ds *model.Dataset) (model.TimeRange, error) {
	if start, end, ok := coverageAttrs(ds); ok {
		return parseTimeRange(start, end)
	}
	if bnds, ok := ds.Variable("time_bnds"); ok && len(bnds.Data) > 0 {
		units := timeUnits(ds, bnds)
		days, err := toDays(bnds.Data, units)
		if err != nil {
			return model.TimeRange{}, err
		}
		return model.TimeRange{Start: days[0], End: days[len(days)-1]}, nil
	}
	if tv, ok := ds.Variable("time"); ok && len(tv.Data) > 0 {
		days, err := toDays(tv.Data, timeUnits(ds, tv))
		if err != nil {
			return model.TimeRange{}, err
		}
		tr := model.TimeRange{Start: math.Inf(1), End: math.Inf(-1)}
		for _, d := range days {
			tr.Start = math.Min(tr.Start, d)
			tr.End = math.Max(tr.End, d)
		}
		return tr, nil
	}
	return model.TimeRange{}, ErrMissingTimeCoverage
}

// PreProcess renames longitude/latitude variables and dimensions to lon/lat
func (p *CMEMSProcessor) PreProcess(ds *model.Dataset) (*model.Dataset, error) {
	ds = ds.Copy()
	renames := map[string]string{}
	for from, to := range map[string]string{"longitude": "lon", "latitude": "lat"} {
		if _, taken := ds.Variable(to); !taken {
			renames[from] = to
		}
	}
	for _, v := range ds.Variables() {
		if to, ok := renames[v.Name]; ok {
			v.Name = to
		}
		for i, dim := range v.Dims {
			if to, ok := renames[dim]; ok {
				v.Dims[i] = to
			}
		}
	}
	return ds, nil
}

// PostProcess returns a copy of ds
func (p *CMEMSProcessor) PostProcess(ds *model.Dataset) (*model.Dataset, error) {
	return ds.Copy(), nil
}

// findCFVar looks up a variable by standard_name, then by candidate names
func findCFVar(ds *model.Dataset, standardName string, names ...string) string {
	for _, v := range ds.Variables() {
		if sn, ok := v.Attrs["standard_name"]; ok && cast.ToString(sn) == standardName {
			return v.Name
		}
	}
	for _, name := range names {
		if _, ok := ds.Variable(name); ok {
			return name
		}
	}
	return names[0]
}

// timeUnits returns the CF units of a time variable; bounds inherit from time
func timeUnits(ds *model.Dataset, v *model.Variable) string {
	if u, ok := v.Attrs["units"]; ok {
		return cast.ToString(u)
	}
	if tv, ok := ds.Variable("time"); ok {
		if u, ok := tv.Attrs["units"]; ok {
			return cast.ToString(u)
		}
	}
	return timecoord.DaysUnits
}

func toDays(values []float64, units string) ([]float64, error) {
	u, err := timecoord.ParseUnits(units)
	if err != nil {
		return nil, err
	}
	if u.IsDaysSince1970() {
		return values, nil
	}
	return timecoord.DecodeCFTime(values, units)
}
