package model

import "fmt"

// CRSWKTEPSG4326 is the well-known-text encoding of the EPSG:4326 geographic CRS
const CRSWKTEPSG4326 = `GEOGCS["WGS 84",
    DATUM["WGS_1984",
        SPHEROID["WGS 84",6378137,298.257223563,
            AUTHORITY["EPSG","7030"]],
        AUTHORITY["EPSG","6326"]],
    PRIMEM["Greenwich",0,
        AUTHORITY["EPSG","8901"]],
    UNIT["degree",0.01745329251994328,
        AUTHORITY["EPSG","9122"]],
    AUTHORITY["EPSG","4326"]]`

// Reader parameter keys understood by the dataset readers
const (
	// ReaderDecodeCF applies CF encoding attributes (_FillValue, scale_factor, add_offset)
	ReaderDecodeCF = "decode_cf"
	// ReaderDecodeCoords promotes variables listed in "coordinates" attributes to coordinates
	ReaderDecodeCoords = "decode_coords"
	// ReaderDecodeTimes decodes CF time units of the time coordinate
	ReaderDecodeTimes = "decode_times"
)

// ReprojectionInfo describes the geolocation structure of an input dataset
type ReprojectionInfo struct {
	// XYVarNames are the names of the x and y coordinate variables
	XYVarNames [2]string `json:"xy_var_names"`

	// XYTPVarNames are the names of the x and y tie-point variables, empty if none
	XYTPVarNames [2]string `json:"xy_tp_var_names,omitempty"`

	// XYCRS is the CRS of the x and y coordinates as WKT
	XYCRS string `json:"xy_crs"`

	// XYGCPStep is the ground control point sampling step, 0 if not present
	XYGCPStep int `json:"xy_gcp_step,omitempty"`
}

// HasTiePoints reports whether tie-point variable names are set
func (r ReprojectionInfo) HasTiePoints() bool {
	return r.XYTPVarNames[0] != "" && r.XYTPVarNames[1] != ""
}

// Validate checks the reprojection info invariants
func (r ReprojectionInfo) Validate() error {
	if r.XYVarNames[0] == "" || r.XYVarNames[1] == "" {
		return fmt.Errorf("reprojection info: missing xy variable names")
	}
	if r.XYGCPStep < 0 {
		return fmt.Errorf("reprojection info: xy_gcp_step must be a positive integer, got %d", r.XYGCPStep)
	}
	return nil
}

// TimeRange is a start/end pair expressed in days since 1970-01-01
type TimeRange struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}
