package reader

import (
	"fmt"
	"math"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"

	"github.com/sliink/l2gen/internal/model"
	"github.com/sliink/l2gen/internal/timecoord"
)

// Decode applies the CF decoding steps enabled in params to a copy of ds
func Decode(ds *model.Dataset, params map[string]interface{}) (*model.Dataset, error) {
	ds = ds.Copy()
	if flag(params, model.ReaderDecodeCF) {
		for _, v := range ds.Variables() {
			if err := decodeCF(v); err != nil {
				return nil, err
			}
		}
	}
	if flag(params, model.ReaderDecodeCoords) {
		decodeCoords(ds)
	}
	if flag(params, model.ReaderDecodeTimes) {
		if err := decodeTimes(ds); err != nil {
			return nil, err
		}
	}
	return ds, nil
}

func flag(params map[string]interface{}, name string) bool {
	raw, ok := params[name]
	if !ok {
		return false
	}
	return cast.ToBool(raw)
}

// decodeCF masks fill values and applies scale_factor/add_offset.
// The encoding attributes are removed from the decoded variable.
func decodeCF(v *model.Variable) error {
	fill, hasFill, err := floatAttr(v, "_FillValue")
	if err != nil {
		return err
	}
	missing, hasMissing, err := floatAttr(v, "missing_value")
	if err != nil {
		return err
	}
	scale, hasScale, err := floatAttr(v, "scale_factor")
	if err != nil {
		return err
	}
	offset, hasOffset, err := floatAttr(v, "add_offset")
	if err != nil {
		return err
	}
	if !hasFill && !hasMissing && !hasScale && !hasOffset {
		return nil
	}
	if !hasScale {
		scale = 1
	}

	if v.Data != nil {
		data := make([]float64, len(v.Data))
		for i, x := range v.Data {
			switch {
			case hasFill && x == fill, hasMissing && x == missing:
				data[i] = math.NaN()
			default:
				data[i] = x*scale + offset
			}
		}
		v.Data = data
	}
	for _, name := range []string{"_FillValue", "missing_value", "scale_factor", "add_offset"} {
		delete(v.Attrs, name)
	}
	return nil
}

func floatAttr(v *model.Variable, name string) (float64, bool, error) {
	raw, ok := v.Attrs[name]
	if !ok || raw == nil {
		return 0, false, nil
	}
	f, err := cast.ToFloat64E(raw)
	if err != nil {
		return 0, false, fmt.Errorf("variable %q: invalid %s: %w", v.Name, name, err)
	}
	return f, true, nil
}

// decodeCoords promotes data variables named in "coordinates" attributes
func decodeCoords(ds *model.Dataset) {
	var names []string
	for _, v := range ds.DataVars {
		raw, ok := v.Attrs["coordinates"]
		if !ok {
			continue
		}
		names = append(names, strings.Fields(cast.ToString(raw))...)
		delete(v.Attrs, "coordinates")
	}
	for _, name := range names {
		if v, ok := ds.DataVar(name); ok {
			logrus.WithField("variable", name).Debug("Promoting variable to coordinate")
			ds.SetCoord(v)
		}
	}
}

// decodeTimes converts the time coordinate and its bounds to days since 1970
func decodeTimes(ds *model.Dataset) error {
	tv, ok := ds.Variable("time")
	if !ok {
		return nil
	}
	units := cast.ToString(tv.Attrs["units"])
	if !strings.Contains(units, " since ") {
		return nil
	}

	targets := []*model.Variable{tv}
	if bounds, ok := tv.Attrs["bounds"]; ok {
		if bv, ok := ds.Variable(cast.ToString(bounds)); ok {
			targets = append(targets, bv)
		}
	}
	for _, v := range targets {
		vUnits := units
		if u, ok := v.Attrs["units"]; ok {
			vUnits = cast.ToString(u)
		}
		if v.Data != nil {
			days, err := timecoord.DecodeCFTime(v.Data, vUnits)
			if err != nil {
				return fmt.Errorf("variable %q: %w", v.Name, err)
			}
			v.Data = days
		}
		v.Attrs["units"] = timecoord.DaysUnits
	}
	return nil
}
