package core

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sliink/l2gen/internal/model"
	"github.com/sliink/l2gen/internal/plugin"
	"github.com/sliink/l2gen/internal/reader"
)

// ErrUnknownProcessor is returned when a request names no known processor
var ErrUnknownProcessor = plugin.ErrUnknownProcessor

// OpenFunc opens an input dataset, see reader.OpenFor
type OpenFunc func(path, kind string, params map[string]interface{}) (*model.Dataset, error)

// LookupFunc resolves a processor by name and configures it with params
type LookupFunc func(name string, params map[string]interface{}) (model.InputProcessor, error)

// Request describes one pipeline run
type Request struct {
	Processor string                 `json:"input_processor"`
	Params    map[string]interface{} `json:"input_processor_params,omitempty"`
	InputPath string                 `json:"input_path"`
}

// Result is the outcome of a pipeline run
type Result struct {
	Processor        string                 `json:"input_processor"`
	InputPath        string                 `json:"input_path"`
	ReprojectionInfo model.ReprojectionInfo `json:"reprojection_info"`
	TimeRange        model.TimeRange        `json:"time_range"`
	Dims             map[string]int         `json:"dims"`
	Dataset          *model.Dataset         `json:"-"`
	Duration         time.Duration          `json:"duration"`
}

// GenPipeline drives an input processor over one input file. Reprojection
// itself happens outside this package; Run stops after post-processing.
type GenPipeline struct {
	lookup LookupFunc
	open   OpenFunc
	log    *logrus.Entry
}

// NewFactoryGenPipeline creates a pipeline that builds a private processor per run
func NewFactoryGenPipeline(factory *plugin.ProcessorFactory) *GenPipeline {
	return newGenPipeline(factory.CreateConfigured)
}

func newGenPipeline(lookup LookupFunc) *GenPipeline {
	return &GenPipeline{
		lookup: lookup,
		open:   reader.OpenFor,
		log:    logrus.WithField("component", "gen_pipeline"),
	}
}

// Run opens the input of req and passes it through the processor stages
func (g *GenPipeline) Run(ctx context.Context, req Request) (*Result, error) {
	started := time.Now()
	log := g.log.WithFields(logrus.Fields{
		"input_processor": req.Processor,
		"input_path":      req.InputPath,
	})

	p, err := g.lookup(req.Processor, req.Params)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log.WithField("reader", p.InputReader()).Debug("Opening input")
	ds, err := g.open(req.InputPath, p.InputReader(), p.InputReaderParams())
	if err != nil {
		return nil, err
	}

	info := p.GetReprojectionInfo(ds)
	if err := info.Validate(); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log.Debug("Pre-processing")
	ds, err = p.PreProcess(ds)
	if err != nil {
		return nil, fmt.Errorf("pre-processing failed: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log.Debug("Post-processing")
	ds, err = p.PostProcess(ds)
	if err != nil {
		return nil, fmt.Errorf("post-processing failed: %w", err)
	}

	timeRange, err := p.GetTimeRange(ds)
	if err != nil {
		return nil, err
	}

	dims, err := ds.Dims()
	if err != nil {
		return nil, err
	}

	result := &Result{
		Processor:        p.Name(),
		InputPath:        req.InputPath,
		ReprojectionInfo: info,
		TimeRange:        timeRange,
		Dims:             dims,
		Dataset:          ds,
		Duration:         time.Since(started),
	}
	log.WithFields(logrus.Fields{
		"variables":  len(ds.DataVars),
		"tie_points": info.HasTiePoints(),
		"time_start": timeRange.Start,
		"time_end":   timeRange.End,
	}).Info("Input processed")
	return result, nil
}
