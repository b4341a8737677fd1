package application

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/piwi3910/packassist/internal/config"
	"github.com/piwi3910/packassist/internal/export"
	"github.com/piwi3910/packassist/internal/importer"
	"github.com/piwi3910/packassist/internal/layout"
	"github.com/piwi3910/packassist/internal/project"
	"github.com/piwi3910/packassist/internal/selection"
	"github.com/piwi3910/packassist/internal/voice"
)

var (
	// ErrUnknownFormat is returned when an export path has an unsupported extension.
	ErrUnknownFormat = errors.New("unknown export format")
	// ErrGeometryMismatch is returned when a saved session was packed with another box geometry.
	ErrGeometryMismatch = errors.New("session geometry differs from configured geometry")
)

// App encapsulates the packing state and its collaborators.
type App struct {
	cfg      config.Config
	logger   *zap.Logger
	registry *prometheus.Registry
	metrics  *voice.Metrics
	backend  VoiceBackend

	layout  *layout.Layout
	history *layout.History
	nav     *selection.Navigator

	source   string
	shipment string

	server *http.Server
}

// Option configures an App.
type Option func(*App)

// WithVoiceBackend sets the function that opens the audio device and recognizer.
func WithVoiceBackend(b VoiceBackend) Option {
	return func(a *App) { a.backend = b }
}

// New initializes the application from the provided configuration.
func New(cfg config.Config, logger *zap.Logger, opts ...Option) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	l, err := layout.New(cfg.Box.Geometry(), cfg.Columns.ColumnSet(), logger.Named("layout"))
	if err != nil {
		return nil, fmt.Errorf("failed to create layout: %w", err)
	}
	history := layout.NewHistory()
	reg := prometheus.NewRegistry()

	a := &App{
		cfg:      cfg,
		logger:   logger,
		registry: reg,
		metrics:  voice.NewMetrics(reg),
		layout:   l,
		history:  history,
		nav:      selection.NewNavigator(l, history),
	}
	for _, opt := range opts {
		opt(a)
	}

	if cfg.Metrics.Addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", a.MetricsHandler())
		a.server = &http.Server{
			Addr:              cfg.Metrics.Addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
	}
	return a, nil
}

// Config returns the resolved configuration.
func (a *App) Config() config.Config { return a.cfg }

func (a *App) Logger() *zap.Logger { return a.logger }

// Layout returns the packing layout shown by the front-end.
func (a *App) Layout() *layout.Layout { return a.layout }

func (a *App) History() *layout.History { return a.history }

// Navigator returns the selection bound to the layout.
func (a *App) Navigator() *selection.Navigator { return a.nav }

// Registry returns the Prometheus registry holding the voice counters.
func (a *App) Registry() *prometheus.Registry { return a.registry }

// Source returns the path of the imported list, if any.
func (a *App) Source() string { return a.source }

// Shipment returns the shipment number used in box labels.
func (a *App) Shipment() string { return a.shipment }

// SetShipment overrides the shipment number taken from the file name.
func (a *App) SetShipment(shipment string) { a.shipment = strings.TrimSpace(shipment) }

// ExportGrid returns the printable view of the current layout.
func (a *App) ExportGrid() layout.ExportGrid { return a.layout.ExportGrid(a.shipment) }

func (a *App) pdfOptions() export.PDFOptions {
	return export.PDFOptions{FontPath: a.cfg.Export.FontPath}
}

// Open imports a shipment list and loads it into the layout. Import errors
// leave the current list untouched. Undo history and selection are reset.
func (a *App) Open(path string) (importer.ImportResult, error) {
	result := importer.Import(path)
	if !result.OK() {
		return result, fmt.Errorf("import %s: %s", filepath.Base(path), strings.Join(result.Errors, "; "))
	}
	for _, w := range result.Warnings {
		a.logger.Warn("import warning", zap.String("file", path), zap.String("warning", w))
	}
	if err := a.layout.Load(result.Table); err != nil {
		return result, fmt.Errorf("load %s: %w", filepath.Base(path), err)
	}
	a.history.Clear()
	a.nav.Clear()
	a.source = path
	a.shipment = result.Shipment
	a.logger.Info("shipment opened",
		zap.String("file", path),
		zap.String("shipment", a.shipment),
		zap.Int("samples", a.layout.Len()),
	)
	return result, nil
}

// Export writes the current layout to path. The format follows the
// extension: .xlsx for the workbook, .pdf for the printable map.
func (a *App) Export(path string) error {
	eg := a.ExportGrid()
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		err = export.ExportExcel(path, export.Workbook{
			Columns: a.layout.Columns(),
			Samples: a.layout.Samples(),
			Map:     eg,
		})
	case ".pdf":
		err = export.ExportPDF(path, eg, a.pdfOptions())
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, filepath.Ext(path))
	}
	if err != nil {
		return fmt.Errorf("export %s: %w", filepath.Base(path), err)
	}
	a.logger.Info("layout exported", zap.String("file", path), zap.Int("boxes", len(eg.Boxes)))
	return nil
}

// ExportLabels writes one QR label per box to a PDF at path.
func (a *App) ExportLabels(path string) error {
	if err := export.ExportLabels(path, a.ExportGrid(), a.pdfOptions()); err != nil {
		return fmt.Errorf("export labels %s: %w", filepath.Base(path), err)
	}
	return nil
}

// SaveSession writes the working state to the configured session path.
func (a *App) SaveSession() error {
	return project.SaveSession(a.cfg.Session.Path, project.Session{
		Source:   a.source,
		Shipment: a.shipment,
		Geometry: a.layout.Geometry(),
		Columns:  a.layout.Columns(),
		Samples:  a.layout.Samples(),
	})
}

// Autosave saves the session when autosave is enabled. Failures are logged.
func (a *App) Autosave() {
	if !a.cfg.Session.Autosave {
		return
	}
	if err := a.SaveSession(); err != nil {
		a.logger.Warn("autosave failed", zap.Error(err))
	}
}

// RestoreSession loads the saved session into the layout. It reports false
// when there is nothing to restore.
func (a *App) RestoreSession() (bool, error) {
	s, err := project.LoadSession(a.cfg.Session.Path)
	if errors.Is(err, project.ErrNoSession) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if s.Geometry != a.layout.Geometry() {
		return false, fmt.Errorf("%w: saved %s, configured %s", ErrGeometryMismatch, s.Geometry, a.layout.Geometry())
	}
	a.layout.Replace(s.Samples)
	a.history.Clear()
	a.nav.Clear()
	a.source = s.Source
	a.shipment = s.Shipment
	a.logger.Info("session restored", zap.String("saved_at", s.SavedAt), zap.Int("samples", a.layout.Len()))
	return true, nil
}

// MetricsHandler serves the application registry in the Prometheus text format.
func (a *App) MetricsHandler() http.Handler {
	return promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{})
}

// StartMetrics starts the metrics endpoint in a goroutine when an address is configured.
func (a *App) StartMetrics() {
	if a.server == nil {
		return
	}
	go func() {
		a.logger.Info("metrics listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("metrics server error", zap.Error(err))
		}
	}()
}

// Shutdown stops the metrics endpoint.
func (a *App) Shutdown(ctx context.Context) error {
	if a.server == nil {
		return nil
	}
	return a.server.Shutdown(ctx)
}
