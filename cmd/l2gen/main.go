package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sliink/l2gen/internal/api"
	"github.com/sliink/l2gen/internal/core"
)

type options struct {
	configFile string
	logLevel   string
	processor  string
	params     string
	apiPort    int
	apiHost    string
	inputRoot  string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "l2gen",
		Short:         "l2gen - Inspect Level-2 input products for data cube generation",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level, overrides the configuration")

	rootCmd.AddCommand(
		newListCmd(opts),
		newDescribeCmd(opts),
		newInspectCmd(opts),
		newServeCmd(opts),
	)
	return rootCmd
}

// loadApp loads the configuration and sets up logging
func loadApp(opts *options) (*core.App, error) {
	c, err := core.LoadConfig(opts.configFile)
	if err != nil {
		return nil, err
	}
	if opts.logLevel != "" {
		c.Log.Level = opts.logLevel
	}
	core.SetupLogging(c.Log)
	return core.NewApp(c), nil
}

func newListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available input processors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(opts)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tDESCRIPTION")
			for _, info := range app.Processors() {
				fmt.Fprintf(w, "%s\t%s\n", info.Name, info.Description)
			}
			return w.Flush()
		},
	}
}

func newDescribeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "describe NAME",
		Short: "Describe an input processor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(opts)
			if err != nil {
				return err
			}
			info, exists := app.Processor(args[0])
			if !exists {
				return fmt.Errorf("%w: %s", core.ErrUnknownProcessor, args[0])
			}
			return writeJSON(cmd, info)
		},
	}
}

func newInspectCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect INPUT",
		Short: "Run an input processor over an input file and print the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(opts)
			if err != nil {
				return err
			}

			req := app.Config.Request(args[0])
			if opts.processor != "" {
				req.Processor = opts.processor
			}
			if req.Processor == "" {
				return fmt.Errorf("no input processor given, use --processor or input_processor in the configuration")
			}
			if opts.params != "" {
				params, err := decodeParams(opts.params)
				if err != nil {
					return err
				}
				req.Params = mergeParams(req.Params, params)
			}

			result, err := app.Pipeline().Run(cmd.Context(), req)
			if err != nil {
				return err
			}
			return writeJSON(cmd, result)
		},
	}
	cmd.Flags().StringVarP(&opts.processor, "processor", "p", "", "Input processor name")
	cmd.Flags().StringVar(&opts.params, "params", "", "Input processor parameters as JSON object")
	return cmd
}

func newServeCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(opts)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("api-port") {
				app.Config.API.Port = opts.apiPort
			}
			if cmd.Flags().Changed("api-host") {
				app.Config.API.Host = opts.apiHost
			}
			if cmd.Flags().Changed("input-root") {
				app.Config.API.InputRoot = opts.inputRoot
			}
			return serve(api.NewAPI(app))
		},
	}
	cmd.Flags().IntVar(&opts.apiPort, "api-port", 8080, "API server port")
	cmd.Flags().StringVar(&opts.apiHost, "api-host", "localhost", "API server host")
	cmd.Flags().StringVar(&opts.inputRoot, "input-root", ".", "Directory inspect requests may read from")
	return cmd
}

func serve(apiServer *api.API) error {
	errs := make(chan error, 1)
	go func() {
		if err := apiServer.Start(); err != nil && err != http.ErrServerClosed {
			errs <- err
		}
		close(errs)
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	select {
	case err := <-errs:
		return err
	case <-sigs:
	}

	logrus.Info("Shutting down API server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return apiServer.Stop(ctx)
}

func decodeParams(s string) (map[string]interface{}, error) {
	var params map[string]interface{}
	dec := json.NewDecoder(bytes.NewReader([]byte(s)))
	dec.UseNumber()
	if err := dec.Decode(&params); err != nil {
		return nil, fmt.Errorf("invalid --params: %w", err)
	}
	return params, nil
}

func mergeParams(base, override map[string]interface{}) map[string]interface{} {
	merged := make(map[string]interface{}, len(base)+len(override))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range override {
		merged[k] = v
	}
	return merged
}

func writeJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
