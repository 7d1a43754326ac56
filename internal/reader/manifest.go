package reader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sliink/l2gen/internal/model"
)

func openJSON(path string, params map[string]interface{}) (*model.Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	ds := model.NewDataset()
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(ds); err != nil {
		return nil, fmt.Errorf("invalid JSON manifest: %w", err)
	}
	return finish(ds, params)
}

func openYAML(path string, params map[string]interface{}) (*model.Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	ds := model.NewDataset()
	if err := yaml.Unmarshal(data, ds); err != nil {
		return nil, fmt.Errorf("invalid YAML manifest: %w", err)
	}
	return finish(ds, params)
}

func finish(ds *model.Dataset, params map[string]interface{}) (*model.Dataset, error) {
	if ds.Attrs == nil {
		ds.Attrs = make(map[string]interface{})
	}
	for _, v := range ds.Variables() {
		if v.Attrs == nil {
			v.Attrs = make(map[string]interface{})
		}
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return Decode(ds, params)
}
