package server

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/tools/go/packages"

	"github.com/toyz/thinobj/internal/errors"
	"github.com/toyz/thinobj/internal/generator"
	"github.com/toyz/thinobj/internal/models"
	"github.com/toyz/thinobj/internal/parser"
)

// Server previews generated companions over HTTP. Each request runs its
// own pipeline, so requests are served concurrently.
type Server struct {
	echo    *echo.Echo
	config  Config
	version string
}

// New creates a preview server
func New(config Config, version string) *Server {
	if config.Addr == "" {
		config.Addr = DefaultConfig().Addr
	}
	if config.MaxSourceBytes <= 0 {
		config.MaxSourceBytes = DefaultConfig().MaxSourceBytes
	}
	if config.ShutdownTimeout <= 0 {
		config.ShutdownTimeout = DefaultConfig().ShutdownTimeout
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(requestLogger())
	e.Use(middleware.BodyLimit(bodyLimit(config.MaxSourceBytes)))
	if config.EnableCORS {
		e.Use(middleware.CORS())
	}

	s := &Server{echo: e, config: config, version: version}
	e.GET("/healthz", s.handleHealth)
	e.POST("/v1/generate", s.handleGenerate)
	return s
}

// Handler exposes the routes, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves until ctx is done, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.echo.Start(s.config.Addr)
	}()
	Logger().Info("preview server listening", zap.String("addr", s.config.Addr))

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	Logger().Info("preview server stopped")
	return nil
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok", "version": s.version})
}

// bodyLimit bounds the request body before it is decoded. JSON escaping
// can grow each source byte to six, plus room for the other fields.
func bodyLimit(maxSource int64) string {
	return fmt.Sprintf("%dB", maxSource*6+64<<10)
}

// noRemotePackages refuses to load packages; supers from other packages
// are reported as warnings and assumed to use default names
func noRemotePackages(_ string, importPath string) (*packages.Package, error) {
	return nil, fmt.Errorf("the preview server does not load package %s", importPath)
}

func (s *Server) handleGenerate(c echo.Context) error {
	requestID := c.Response().Header().Get(echo.HeaderXRequestID)

	var req GenerateRequest
	if err := c.Bind(&req); err != nil {
		if stderrors.Is(err, echo.ErrStatusRequestEntityTooLarge) {
			return err
		}
		return ErrBadRequest("request body must be a JSON object")
	}
	if strings.TrimSpace(req.Source) == "" {
		return ErrBadRequest("source is required")
	}
	if int64(len(req.Source)) > s.config.MaxSourceBytes {
		return NewHttpError(http.StatusRequestEntityTooLarge, fmt.Sprintf("source exceeds %d bytes", s.config.MaxSourceBytes))
	}

	filename := filepath.Base(req.Filename)
	if req.Filename == "" {
		filename = "source.go"
	}
	if !strings.HasSuffix(filename, ".go") {
		return ErrBadRequest("filename must end in .go")
	}

	file, err := parser.NewParser().ParseSource(filename, req.Source)
	if err != nil {
		return ErrUnprocessable("source does not parse", diagnostics(err))
	}
	file.ImportPath = req.ImportPath

	inheritance := s.config.ExperimentalInheritance
	if req.ExperimentalInheritance != nil {
		inheritance = *req.ExperimentalInheritance
	}
	pipeline := generator.NewPipeline(
		generator.Options{ExperimentalInheritance: inheritance},
		generator.NewPackageResolver([]*models.SourceFile{file}, noRemotePackages),
	)

	out, err := generator.NewFileGenerator(pipeline, req.Suffix).GenerateFile(file)
	if err != nil {
		diags := diagnostics(err)
		Logger().Info("generation rejected",
			zap.String("request_id", requestID),
			zap.String("file", filename),
			zap.Int("errors", len(diags)))
		return ErrUnprocessable("generation failed", diags)
	}

	resp := GenerateResponse{RequestID: requestID, Interfaces: []string{}, Warnings: []Diagnostic{}}
	if out != nil {
		resp.Path = out.Path
		resp.Content = string(out.Content)
		resp.Interfaces = out.Interfaces
		for _, w := range out.Warnings {
			resp.Warnings = append(resp.Warnings, warningDiagnostic(w))
		}
	}
	Logger().Debug("generated companion",
		zap.String("request_id", requestID),
		zap.String("file", filename),
		zap.Strings("interfaces", resp.Interfaces))
	return c.JSON(http.StatusOK, resp)
}

// diagnostics flattens err into one diagnostic per failure
func diagnostics(err error) []Diagnostic {
	var multi *errors.MultipleErrors
	if stderrors.As(err, &multi) {
		out := make([]Diagnostic, 0, multi.Count())
		for _, e := range multi.Errors {
			out = append(out, errorDiagnostic(models.NewGeneratorError("", e)))
		}
		return out
	}
	return []Diagnostic{errorDiagnostic(models.NewGeneratorError("", err))}
}

// errorHandler renders every error as JSON
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *HttpError
	if !stderrors.As(err, &he) {
		he = NewHttpError(http.StatusInternalServerError, "internal server error")
		var ee *echo.HTTPError
		if stderrors.As(err, &ee) {
			he = NewHttpError(ee.Code, fmt.Sprint(ee.Message))
		} else {
			Logger().Error("request failed", zap.Error(err))
		}
	}
	he.RequestID = c.Response().Header().Get(echo.HeaderXRequestID)

	if err := c.JSON(he.StatusCode, he); err != nil {
		Logger().Error("failed to write error response", zap.Error(err))
	}
}

func requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			Logger().Info("request", fields...)
			return nil
		},
	})
}
