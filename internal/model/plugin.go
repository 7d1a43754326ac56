package model

// InputProcessor adapts one family of Level-2 input products to the
// generation pipeline.
//
// Instances carry mutable configuration and are not safe for concurrent
// use. Callers must serialize Configure and the calls that follow it, or
// create a private instance per pipeline run.
type InputProcessor interface {
	// Name returns the unique registry key of the processor
	Name() string

	// Description returns a human-readable description
	Description() string

	// InputReader returns the reader kind used to open inputs
	InputReader() string

	// InputReaderParams returns the options passed to the reader
	InputReaderParams() map[string]interface{}

	// Configure validates and applies named processor parameters
	Configure(params map[string]interface{}) error

	// GetReprojectionInfo describes the geolocation of a dataset
	GetReprojectionInfo(ds *Dataset) ReprojectionInfo

	// GetTimeRange extracts the observation time range of a dataset
	GetTimeRange(ds *Dataset) (TimeRange, error)

	// PreProcess runs before reprojection and returns a new dataset
	PreProcess(ds *Dataset) (*Dataset, error)

	// PostProcess runs after reprojection and returns a new dataset
	PostProcess(ds *Dataset) (*Dataset, error)
}

// Registry receives input processors keyed by name
type Registry interface {
	// Register adds a processor, replacing any processor with the same name
	Register(name string, processor InputProcessor)
}
