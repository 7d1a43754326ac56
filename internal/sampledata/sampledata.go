// Package sampledata builds small in-memory Level-2 datasets for tests.
package sampledata

import (
	"fmt"

	"github.com/sliink/l2gen/internal/model"
)

// OLCIWavelengths are the central wavelengths in nm of the 16 HIGHROC OLCI bands
var OLCIWavelengths = []float64{
	400., 412.5, 442.5, 490., 510., 560., 620., 665.,
	673.75, 681.25, 708.75, 753.75, 778.75, 865., 885., 940.,
}

const (
	width  = 4
	height = 3
)

// HighrocOptions tweak the generated HIGHROC dataset
type HighrocOptions struct {
	// NoSpectra omits the rtoa_* and rrs_* band variables
	NoSpectra bool
	// Wavelengths overrides OLCIWavelengths
	Wavelengths []float64
}

// NewHighrocDataset creates a SNAP HIGHROC OLCI L2 dataset of 3x4 pixels
func NewHighrocDataset(opts HighrocOptions) *model.Dataset {
	wavelengths := opts.Wavelengths
	if wavelengths == nil {
		wavelengths = OLCIWavelengths
	}

	ds := model.NewDataset()
	ds.Attrs["product_type"] = "C2RCC_OLCI"
	ds.Attrs["start_date"] = "14-APR-2017 10:27:50.183264"
	ds.Attrs["stop_date"] = "14-APR-2017 10:31:42.736226"

	ds.SetCoord(grid("lon", func(y, x int) float64 { return 0.0 + 0.5*float64(x) }, map[string]interface{}{
		"long_name":     "longitude",
		"standard_name": "longitude",
		"units":         "degrees_east",
	}))
	ds.SetCoord(grid("lat", func(y, x int) float64 { return 50.0 + 0.5*float64(y) }, map[string]interface{}{
		"long_name":     "latitude",
		"standard_name": "latitude",
		"units":         "degrees_north",
	}))

	if !opts.NoSpectra {
		for i, w := range wavelengths {
			ds.SetDataVar(grid(fmt.Sprintf("rtoa_%d", i+1), constant(0.1*float64(i+1)), map[string]interface{}{
				"units":      "1",
				"long_name":  "Top-of-atmosphere reflectance",
				"wavelength": w,
			}))
		}
		for i, w := range wavelengths {
			ds.SetDataVar(grid(fmt.Sprintf("rrs_%d", i+1), constant(0.01*float64(i+1)), map[string]interface{}{
				"units":                  "sr^-1",
				"long_name":              "Atmospherically corrected angular dependent remote sensing reflectances",
				"wavelength":             w,
				"valid_pixel_expression": "c2rcc_flags.Valid_PE",
			}))
		}
	}

	ds.SetDataVar(grid("c2rcc_flags", constant(1), map[string]interface{}{
		"flag_masks":    []interface{}{1, 2, 4},
		"flag_meanings": "Rtosa_OOS Rtosa_OOR Valid_PE",
	}))
	ds.SetDataVar(grid("conc_tsm", constant(3.5), map[string]interface{}{
		"units":                  "g m^-3",
		"long_name":              "Total suspended matter dry weight concentration",
		"valid_pixel_expression": "c2rcc_flags.Valid_PE && !c2rcc_flags.Rtosa_OOR",
	}))
	ds.SetDataVar(grid("conc_chl", constant(1.5), map[string]interface{}{
		"units":                  "mg m^-3",
		"long_name":              "Chlorophyll concentration",
		"valid_pixel_expression": "c2rcc_flags.Valid_PE",
	}))
	ds.SetDataVar(grid("kd489", constant(0.2), map[string]interface{}{
		"units":      "m^-1",
		"long_name":  "Irradiance attenuation coefficient at 489 nm",
		"expression": "c2rcc_flags.Valid_PE ? 0.2 : NaN",
	}))
	return ds
}

func constant(v float64) func(y, x int) float64 {
	return func(int, int) float64 { return v }
}

func grid(name string, f func(y, x int) float64, attrs map[string]interface{}) *model.Variable {
	data := make([]float64, 0, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			data = append(data, f(y, x))
		}
	}
	return &model.Variable{
		Name:  name,
		Dims:  []string{"y", "x"},
		Shape: []int{height, width},
		Data:  data,
		Attrs: attrs,
	}
}
