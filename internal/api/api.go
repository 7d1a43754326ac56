package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/sliink/l2gen/internal/api/docs"
	"github.com/sliink/l2gen/internal/core"
	"github.com/sliink/l2gen/internal/model"
	"github.com/sliink/l2gen/internal/plugin"
	"github.com/sliink/l2gen/internal/timecoord"
)

// ErrOutsideInputRoot is returned for input paths that resolve outside the input root
var ErrOutsideInputRoot = errors.New("input_path escapes the input root")

// API represents the REST API of l2gen
type API struct {
	app       *core.App
	pipeline  *core.GenPipeline
	router    *gin.Engine
	server    *http.Server
	port      int
	host      string
	inputRoot string
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
}

// InspectRequest is the body of POST /processors/{name}/inspect
type InspectRequest struct {
	InputPath string                 `json:"input_path"`
	Params    map[string]interface{} `json:"input_processor_params,omitempty"`
}

// InspectResponse summarizes a processed input
type InspectResponse struct {
	Processor         string                 `json:"input_processor"`
	InputPath         string                 `json:"input_path"`
	ReprojectionInfo  model.ReprojectionInfo `json:"reprojection_info"`
	TimeRange         model.TimeRange        `json:"time_range"`
	TimeCoverageStart string                 `json:"time_coverage_start"`
	TimeCoverageEnd   string                 `json:"time_coverage_end"`
	Dims              map[string]int         `json:"dims"`
	Coords            []string               `json:"coords"`
	DataVars          []string               `json:"data_vars"`
}

// NewAPI creates a new API instance
// @title           l2gen API
// @version         1.0
// @description     Inspect Level-2 input products with the l2gen input processors
// @BasePath        /
func NewAPI(app *core.App) *API {
	host, port := app.Config.API.Host, app.Config.API.Port
	docs.SwaggerInfo.Host = fmt.Sprintf("%s:%d", host, port)

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	api := &API{
		app:       app,
		pipeline:  app.Pipeline(),
		router:    router,
		port:      port,
		host:      host,
		inputRoot: app.Config.API.InputRoot,
	}

	api.setupRoutes()

	return api
}

// setupRoutes configures all the API routes
func (a *API) setupRoutes() {
	a.router.GET("/health", a.healthCheck)

	processors := a.router.Group("/processors")
	{
		processors.GET("", a.getProcessors)
		processors.GET("/:name", a.getProcessorByName)
		processors.POST("/:name/inspect", a.inspect)
	}

	a.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger.json")))
	a.router.GET("/swagger.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(docs.SwaggerInfo.ReadDoc()))
	})
}

// Handler returns the HTTP handler of the API
func (a *API) Handler() http.Handler {
	return a.router
}

// Start starts the API server
func (a *API) Start() error {
	addr := fmt.Sprintf("%s:%d", a.host, a.port)
	a.server = &http.Server{
		Addr:    addr,
		Handler: a.router,
	}

	logrus.WithField("addr", addr).Info("Starting API server")
	return a.server.ListenAndServe()
}

// Stop stops the API server
func (a *API) Stop(ctx context.Context) error {
	if a.server == nil {
		return nil
	}
	return a.server.Shutdown(ctx)
}

// healthCheck handles GET /health
// @Summary      Health check
// @Description  Check if the API is running
// @Tags         system
// @Produce      json
// @Success      200  {object}  core.HealthStatus
// @Router       /health [get]
func (a *API) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, a.app.Health())
}

// getProcessors handles GET /processors
// @Summary      List input processors
// @Description  List all registered input processors
// @Tags         processors
// @Produce      json
// @Success      200  {array}   core.ProcessorInfo
// @Router       /processors [get]
func (a *API) getProcessors(c *gin.Context) {
	c.JSON(http.StatusOK, a.app.Processors())
}

// getProcessorByName handles GET /processors/:name
// @Summary      Describe an input processor
// @Description  Describe one input processor
// @Tags         processors
// @Produce      json
// @Param        name    path    string  true  "Processor name"
// @Success      200  {object}  core.ProcessorInfo
// @Failure      404  {object}  ErrorResponse
// @Router       /processors/{name} [get]
func (a *API) getProcessorByName(c *gin.Context) {
	info, exists := a.app.Processor(c.Param("name"))
	if !exists {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Processor not found"})
		return
	}
	c.JSON(http.StatusOK, info)
}

// inspect handles POST /processors/:name/inspect
// @Summary      Inspect an input file
// @Description  Configure a private processor instance and run it over an input file below the input root
// @Tags         processors
// @Accept       json
// @Produce      json
// @Param        name     path    string          true  "Processor name"
// @Param        request  body    InspectRequest  true  "Input and processor parameters"
// @Success      200  {object}  InspectResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      422  {object}  ErrorResponse
// @Router       /processors/{name}/inspect [post]
func (a *API) inspect(c *gin.Context) {
	var req InspectRequest
	dec := json.NewDecoder(c.Request.Body)
	dec.UseNumber()
	if err := dec.Decode(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body: " + err.Error()})
		return
	}
	if req.InputPath == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "input_path is required"})
		return
	}
	path, err := resolveInputPath(a.inputRoot, req.InputPath)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	result, err := a.pipeline.Run(c.Request.Context(), core.Request{
		Processor: c.Param("name"),
		Params:    req.Params,
		InputPath: path,
	})
	if err != nil {
		c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, newInspectResponse(result))
}

func newInspectResponse(result *core.Result) InspectResponse {
	resp := InspectResponse{
		Processor:         result.Processor,
		InputPath:         result.InputPath,
		ReprojectionInfo:  result.ReprojectionInfo,
		TimeRange:         result.TimeRange,
		TimeCoverageStart: timecoord.FormatDays(result.TimeRange.Start),
		TimeCoverageEnd:   timecoord.FormatDays(result.TimeRange.End),
		Dims:              result.Dims,
		Coords:            make([]string, 0, len(result.Dataset.Coords)),
		DataVars:          make([]string, 0, len(result.Dataset.DataVars)),
	}
	for _, v := range result.Dataset.Coords {
		resp.Coords = append(resp.Coords, v.Name)
	}
	for _, v := range result.Dataset.DataVars {
		resp.DataVars = append(resp.DataVars, v.Name)
	}
	sort.Strings(resp.DataVars)
	return resp
}

// resolveInputPath joins relative paths to root and rejects paths that
// leave root, following symlinks of existing files
func resolveInputPath(root, inputPath string) (string, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}
	path := inputPath
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}
	path = filepath.Clean(path)

	rel, err := filepath.Rel(realPath(root), realPath(path))
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", ErrOutsideInputRoot
	}
	return path, nil
}

// realPath evaluates symlinks of path, or of its directory if path does not exist
func realPath(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved
	}
	if _, err := os.Lstat(path); err == nil {
		return path
	}
	if dir, err := filepath.EvalSymlinks(filepath.Dir(path)); err == nil {
		return filepath.Join(dir, filepath.Base(path))
	}
	return path
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrUnknownProcessor):
		return http.StatusNotFound
	case errors.Is(err, plugin.ErrInvalidParameter), errors.Is(err, plugin.ErrUnexpectedParameters):
		return http.StatusBadRequest
	default:
		return http.StatusUnprocessableEntity
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()
		c.Next()
		logrus.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(started).String(),
		}).Info("Handled request")
	}
}
