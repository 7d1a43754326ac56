// Package vectorize merges per-band variables into spectrum variables
// indexed by a wavelength coordinate.
package vectorize

import (
	"fmt"
	"math"
	"slices"
	"sort"
	"strconv"

	"github.com/spf13/cast"

	"github.com/sliink/l2gen/internal/model"
)

// BandCoordVarFactory builds the band coordinate variable for a band dimension
type BandCoordVarFactory func(bandDimName string, bandValues []float64) *model.Variable

// NewBandCoordVar is the default band coordinate factory
func NewBandCoordVar(bandDimName string, bandValues []float64) *model.Variable {
	return &model.Variable{
		Name:  bandDimName,
		Dims:  []string{bandDimName},
		Shape: []int{len(bandValues)},
		Data:  bandValues,
		Attrs: map[string]interface{}{
			"units":         "nm",
			"standard_name": "sensor_band_central_radiation_wavelength",
			"long_name":     "band_wavelength",
		},
	}
}

type band struct {
	wavelength float64
	variable   *model.Variable
}

type spectrum struct {
	name     string
	bands    []band
	values   []float64
	dimIndex int
}

// VectorizeWavebands replaces variables carrying a positive "wavelength"
// attribute by one variable per spectrum with a leading band dimension.
//
// Spectra with equal wavelengths share a band dimension. If ds has no such
// variables it is returned as is; otherwise ds is modified and returned.
func VectorizeWavebands(ds *model.Dataset, factory BandCoordVarFactory) (*model.Dataset, error) {
	if factory == nil {
		factory = NewBandCoordVar
	}

	var spectra []*spectrum
	byName := make(map[string]*spectrum)
	for _, v := range ds.DataVars {
		wavelength := -1.0
		if raw, ok := v.Attrs["wavelength"]; ok && raw != nil {
			w, err := cast.ToFloat64E(raw)
			if err != nil {
				return nil, fmt.Errorf("variable %q: invalid wavelength %v: %w", v.Name, raw, err)
			}
			wavelength = w
		}
		if wavelength <= 0 {
			continue
		}
		name := spectrumName(v.Name)
		s, ok := byName[name]
		if !ok {
			s = &spectrum{name: name}
			byName[name] = s
			spectra = append(spectra, s)
		}
		s.bands = append(s.bands, band{wavelength: wavelength, variable: v})
	}

	if len(spectra) == 0 {
		return ds, nil
	}

	bandDimCount := 0
	for i, s := range spectra {
		sort.SliceStable(s.bands, func(a, b int) bool {
			return s.bands[a].wavelength < s.bands[b].wavelength
		})
		s.values = make([]float64, len(s.bands))
		for j, b := range s.bands {
			s.values[j] = b.wavelength
		}
		if i == 0 {
			continue
		}
		s.dimIndex = -1
		for _, prev := range spectra[:i] {
			if allClose(s.values, prev.values) {
				s.dimIndex = prev.dimIndex
				break
			}
		}
		if s.dimIndex < 0 {
			bandDimCount++
			s.dimIndex = bandDimCount
		}
	}

	var dropped []string
	for _, s := range spectra {
		for _, b := range s.bands {
			dropped = append(dropped, b.variable.Name)
		}
	}
	ds.DropVars(dropped...)

	for _, s := range spectra {
		bandDimName := "band"
		if bandDimCount > 0 {
			bandDimName = "band" + strconv.Itoa(s.dimIndex+1)
		}
		coord := factory(bandDimName, append([]float64(nil), s.values...))
		stacked, err := stack(s, bandDimName)
		if err != nil {
			return nil, err
		}
		ds.SetDataVar(stacked)
		ds.SetCoord(coord)
	}
	return ds, nil
}

// stack concatenates the band variables of a spectrum along a new leading dimension
func stack(s *spectrum, bandDimName string) (*model.Variable, error) {
	first := s.bands[0].variable
	data := make([]float64, 0, len(s.bands)*first.Size())
	for _, b := range s.bands {
		v := b.variable
		if !slices.Equal(v.Dims, first.Dims) || !slices.Equal(v.Shape, first.Shape) {
			return nil, fmt.Errorf("cannot vectorize spectrum %q: variable %q has dims %v%v, expected %v%v",
				s.name, v.Name, v.Dims, v.Shape, first.Dims, first.Shape)
		}
		if v.Data == nil {
			data = nil
		} else if data != nil {
			data = append(data, v.Data...)
		}
	}

	attrs := make(map[string]interface{}, len(first.Attrs))
	for k, v := range first.Attrs {
		attrs[k] = v
	}
	out, err := model.NewVariable(s.name,
		append([]string{bandDimName}, first.Dims...),
		append([]int{len(s.bands)}, first.Shape...),
		data, attrs)
	if err != nil {
		return nil, fmt.Errorf("cannot vectorize spectrum %q: %w", s.name, err)
	}

	// A singleton time dimension goes first
	if size, ok := out.DimSize("time"); ok && size == 1 && out.Dims[0] != "time" {
		moveDimFirst(out, "time")
	}
	return out, nil
}

// moveDimFirst moves a size-1 dimension to the front; the data layout is unchanged
func moveDimFirst(v *model.Variable, dim string) {
	dims := []string{dim}
	shape := []int{1}
	for i, d := range v.Dims {
		if d != dim {
			dims = append(dims, d)
			shape = append(shape, v.Shape[i])
		}
	}
	v.Dims = dims
	v.Shape = shape
}

// spectrumName strips trailing digits and underscores: rrs_12 -> rrs
func spectrumName(varName string) string {
	i := len(varName) - 1
	for i >= 0 && (varName[i] == '_' || (varName[i] >= '0' && varName[i] <= '9')) {
		i--
	}
	return varName[:i+1]
}

func allClose(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Abs(a[i]-b[i]) > 1e-8+1e-5*math.Abs(b[i]) {
			return false
		}
	}
	return true
}

