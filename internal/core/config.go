package core

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment variables overriding config keys,
// e.g. L2GEN_LOG_LEVEL for log.level
const EnvPrefix = "L2GEN"

// LogConfig configures logrus
type LogConfig struct {
	// Level is one of trace, debug, info, warn, error
	// optional default "info"
	Level string `mapstructure:"level"`

	// Format is "json" or "text"
	// optional default "json"
	Format string `mapstructure:"format"`
}

// APIConfig configures the HTTP server
type APIConfig struct {
	// optional default "localhost"
	Host string `mapstructure:"host"`

	// optional default 8080
	Port int `mapstructure:"port"`

	// InputRoot is the directory inspect requests may read from; relative
	// input paths are resolved against it
	// optional default "."
	InputRoot string `mapstructure:"input_root"`
}

// Config is the l2gen configuration
type Config struct {
	InputProcessor       string                 `mapstructure:"input_processor"`
	InputProcessorParams map[string]interface{} `mapstructure:"input_processor_params"`
	Log                  LogConfig              `mapstructure:"log"`
	API                  APIConfig              `mapstructure:"api"`
}

var envKeys = []string{
	"input_processor",
	"log.level",
	"log.format",
	"api.host",
	"api.port",
	"api.input_root",
}

// LoadConfig reads a YAML or JSON config file. An empty configFile yields
// the defaults; environment variables override file values either way.
func LoadConfig(configFile string) (*Config, error) {
	vp := viper.New()
	vp.SetEnvPrefix(EnvPrefix)
	vp.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range envKeys {
		if err := vp.BindEnv(key); err != nil {
			return nil, err
		}
	}

	if configFile != "" {
		vp.SetConfigFile(configFile)
		if err := vp.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	c := &Config{}
	if err := vp.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	return configMergeDefault(c), nil
}

// Request builds a pipeline request for inputPath from the configured processor
func (c *Config) Request(inputPath string) Request {
	return Request{
		Processor: c.InputProcessor,
		Params:    c.InputProcessorParams,
		InputPath: inputPath,
	}
}

func configMergeDefault(c *Config) *Config {
	if c == nil {
		c = &Config{}
	}
	if c.InputProcessorParams == nil {
		c.InputProcessorParams = make(map[string]interface{})
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}
	if c.API.Host == "" {
		c.API.Host = "localhost"
	}
	if c.API.Port == 0 {
		c.API.Port = 8080
	}
	if c.API.InputRoot == "" {
		c.API.InputRoot = "."
	}
	return c
}
