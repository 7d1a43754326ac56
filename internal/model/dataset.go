package model

import (
	"fmt"
)

// Variable is a named n-dimensional array with attributes.
// Data is stored flat in row-major order.
type Variable struct {
	Name  string                 `json:"name" yaml:"name"`
	Dims  []string               `json:"dims" yaml:"dims"`
	Shape []int                  `json:"shape" yaml:"shape"`
	Data  []float64              `json:"data,omitempty" yaml:"data,omitempty"`
	Attrs map[string]interface{} `json:"attrs,omitempty" yaml:"attrs,omitempty"`
}

// NewVariable creates a variable, checking that data matches the shape
func NewVariable(name string, dims []string, shape []int, data []float64, attrs map[string]interface{}) (*Variable, error) {
	v := &Variable{
		Name:  name,
		Dims:  dims,
		Shape: shape,
		Data:  data,
		Attrs: attrs,
	}
	if v.Attrs == nil {
		v.Attrs = make(map[string]interface{})
	}
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return v, nil
}

// Size returns the number of elements implied by the shape
func (v *Variable) Size() int {
	n := 1
	for _, s := range v.Shape {
		n *= s
	}
	return n
}

// DimSize returns the size of the named dimension
func (v *Variable) DimSize(dim string) (int, bool) {
	for i, d := range v.Dims {
		if d == dim {
			return v.Shape[i], true
		}
	}
	return 0, false
}

// Validate checks that dims, shape and data agree
func (v *Variable) Validate() error {
	if v.Name == "" {
		return fmt.Errorf("variable without name")
	}
	if len(v.Dims) != len(v.Shape) {
		return fmt.Errorf("variable %q: %d dims but %d shape entries", v.Name, len(v.Dims), len(v.Shape))
	}
	if v.Data != nil && len(v.Data) != v.Size() {
		return fmt.Errorf("variable %q: shape %v needs %d values, got %d", v.Name, v.Shape, v.Size(), len(v.Data))
	}
	return nil
}

// Copy returns a copy with its own header and attributes; the data array is shared
func (v *Variable) Copy() *Variable {
	c := &Variable{
		Name:  v.Name,
		Dims:  append([]string(nil), v.Dims...),
		Shape: append([]int(nil), v.Shape...),
		Data:  v.Data,
		Attrs: copyAttrs(v.Attrs),
	}
	return c
}

// Dataset is an in-memory gridded dataset made of coordinate and data variables
type Dataset struct {
	Attrs    map[string]interface{} `json:"attrs,omitempty" yaml:"attrs,omitempty"`
	Coords   []*Variable            `json:"coords,omitempty" yaml:"coords,omitempty"`
	DataVars []*Variable            `json:"data_vars,omitempty" yaml:"data_vars,omitempty"`
}

// NewDataset creates an empty dataset
func NewDataset() *Dataset {
	return &Dataset{
		Attrs:    make(map[string]interface{}),
		Coords:   make([]*Variable, 0),
		DataVars: make([]*Variable, 0),
	}
}

// Copy returns a shallow copy: attributes and variable headers are copied,
// data arrays are shared with the receiver
func (d *Dataset) Copy() *Dataset {
	c := &Dataset{
		Attrs:    copyAttrs(d.Attrs),
		Coords:   make([]*Variable, len(d.Coords)),
		DataVars: make([]*Variable, len(d.DataVars)),
	}
	for i, v := range d.Coords {
		c.Coords[i] = v.Copy()
	}
	for i, v := range d.DataVars {
		c.DataVars[i] = v.Copy()
	}
	return c
}

// Attr returns a global attribute
func (d *Dataset) Attr(name string) (interface{}, bool) {
	v, ok := d.Attrs[name]
	return v, ok
}

// Variables returns coordinate variables followed by data variables
func (d *Dataset) Variables() []*Variable {
	vars := make([]*Variable, 0, len(d.Coords)+len(d.DataVars))
	vars = append(vars, d.Coords...)
	return append(vars, d.DataVars...)
}

// Variable looks up a coordinate or data variable by name
func (d *Dataset) Variable(name string) (*Variable, bool) {
	if v, ok := d.Coord(name); ok {
		return v, true
	}
	return d.DataVar(name)
}

// Coord looks up a coordinate variable by name
func (d *Dataset) Coord(name string) (*Variable, bool) {
	return findVar(d.Coords, name)
}

// DataVar looks up a data variable by name
func (d *Dataset) DataVar(name string) (*Variable, bool) {
	return findVar(d.DataVars, name)
}

// SetCoord adds a coordinate variable or replaces the one with the same name
func (d *Dataset) SetCoord(v *Variable) {
	d.DataVars = dropVars(d.DataVars, v.Name)
	d.Coords = setVar(d.Coords, v)
}

// SetDataVar adds a data variable or replaces the one with the same name
func (d *Dataset) SetDataVar(v *Variable) {
	d.DataVars = setVar(d.DataVars, v)
}

// DropVars removes coordinate and data variables by name
func (d *Dataset) DropVars(names ...string) {
	d.Coords = dropVars(d.Coords, names...)
	d.DataVars = dropVars(d.DataVars, names...)
}

// Dims returns the dimension sizes found across all variables
func (d *Dataset) Dims() (map[string]int, error) {
	dims := make(map[string]int)
	for _, v := range d.Variables() {
		for i, dim := range v.Dims {
			size := v.Shape[i]
			if known, ok := dims[dim]; ok && known != size {
				return nil, fmt.Errorf("conflicting sizes for dimension %q: %d and %d", dim, known, size)
			}
			dims[dim] = size
		}
	}
	return dims, nil
}

// Validate checks every variable and the dimension sizes
func (d *Dataset) Validate() error {
	for _, v := range d.Variables() {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	_, err := d.Dims()
	return err
}

func findVar(vars []*Variable, name string) (*Variable, bool) {
	for _, v := range vars {
		if v.Name == name {
			return v, true
		}
	}
	return nil, false
}

func setVar(vars []*Variable, v *Variable) []*Variable {
	for i, existing := range vars {
		if existing.Name == v.Name {
			vars[i] = v
			return vars
		}
	}
	return append(vars, v)
}

func dropVars(vars []*Variable, names ...string) []*Variable {
	if len(names) == 0 {
		return vars
	}
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}
	kept := vars[:0:0]
	for _, v := range vars {
		if !drop[v.Name] {
			kept = append(kept, v)
		}
	}
	return kept
}

func copyAttrs(attrs map[string]interface{}) map[string]interface{} {
	c := make(map[string]interface{}, len(attrs))
	for k, v := range attrs {
		c[k] = v
	}
	return c
}
