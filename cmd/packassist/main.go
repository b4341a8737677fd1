// PackAssist - Shipment Packing Assistant
//
// A desktop application that lays shipment samples out into boxes, records
// their weights by keyboard or voice and exports box maps and labels.
//
// Build:
//   go build -o packassist ./cmd/packassist
//
// Voice input needs the Vosk library and a Russian model:
//   CGO_ENABLED=1 go build -o packassist ./cmd/packassist
//   packassist --voice-model ./models/vosk-model-small-ru-0.22
//
// Headless use:
//   packassist export --input shipment_17.xlsx --output map.xlsx --output map.pdf
//   packassist listen --voice-model ./models/vosk-model-small-ru-0.22

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/piwi3910/packassist/internal/application"
	"github.com/piwi3910/packassist/internal/config"
	"github.com/piwi3910/packassist/internal/logging"
	"github.com/piwi3910/packassist/internal/ui"
)

const shutdownTimeout = 3 * time.Second

var signalNotify = signal.Notify

func main() {
	kingpinApp := kingpin.New("packassist", "Shipment Packing Assistant - box layout, weighing and voice input")
	configFile := kingpinApp.Flag("config", "Path to YAML configuration file").String()
	rows := kingpinApp.Flag("rows", "Rows per box").Default("-1").Int()
	columns := kingpinApp.Flag("columns", "Columns per box").Default("-1").Int()
	separator := kingpinApp.Flag("separator-rows", "Blank rows between boxes").Default("-1").Int()
	voiceModel := kingpinApp.Flag("voice-model", "Path to the Vosk model directory; enables voice input").String()
	voiceDevice := kingpinApp.Flag("voice-device", "Substring of the input device name").String()
	noVoice := kingpinApp.Flag("no-voice", "Disable voice input").Bool()
	logLevel := kingpinApp.Flag("log-level", "Log level (debug, info, warn, error)").String()
	metricsAddr := kingpinApp.Flag("metrics-addr", "Address of the Prometheus metrics endpoint").String()

	guiCmd := kingpinApp.Command("gui", "Run the desktop application").Default()
	restore := guiCmd.Flag("restore", "Restore the autosaved session on start").Default("true").Bool()

	exportCmd := kingpinApp.Command("export", "Import a shipment list and write box maps")
	exportInput := exportCmd.Flag("input", "Shipment list (.xlsx or .csv)").Required().ExistingFile()
	exportOutputs := exportCmd.Flag("output", "Output file (.xlsx or .pdf); repeatable").Required().Strings()
	exportLabels := exportCmd.Flag("labels", "Write QR box labels to this PDF").String()
	exportShipment := exportCmd.Flag("shipment", "Shipment number; defaults to the number in the input file name").String()

	listenCmd := kingpinApp.Command("listen", "Print recognized numbers and commands until interrupted")

	command := kingpin.MustParse(kingpinApp.Parse(os.Args[1:]))

	overrides := &config.CLIOverrides{
		ConfigFile:    *configFile,
		Rows:          rows,
		Columns:       columns,
		SeparatorRows: separator,
		VoiceModel:    voiceModel,
		VoiceDevice:   voiceDevice,
		NoVoice:       noVoice,
		LogLevel:      logLevel,
		MetricsAddr:   metricsAddr,
	}
	cfg, err := config.Load(overrides)
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer func() {
		_ = logger.Sync()
	}()

	app, err := application.New(cfg, logger, application.WithVoiceBackend(openDevices))
	if err != nil {
		logger.Fatal("failed to initialize application", zap.Error(err))
	}
	app.StartMetrics()
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.Shutdown(ctx); err != nil {
			logger.Warn("metrics shutdown failed", zap.Error(err))
		}
	}()

	switch command {
	case exportCmd.FullCommand():
		err = app.RunExport(application.ExportOptions{
			Input:    *exportInput,
			Outputs:  *exportOutputs,
			Labels:   *exportLabels,
			Shipment: *exportShipment,
		})
	case listenCmd.FullCommand():
		err = app.Listen(signalContext(), os.Stdout)
	case guiCmd.FullCommand():
		runGUI(app, *restore)
	}
	if err != nil {
		logger.Error("command failed", zap.String("command", command), zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}

func runGUI(app *application.App, restore bool) {
	fa := fyneapp.NewWithID("com.piwi3910.packassist")
	fa.Settings().SetTheme(ui.NewPackTheme())

	window := fa.NewWindow("PackAssist - Shipment Packing Assistant")
	appUI := ui.NewApp(window, app)
	appUI.SetupMenus()
	window.SetContent(appUI.Build())
	if restore {
		appUI.RestoreSession()
	}
	window.Resize(fyne.NewSize(1400, 800))
	window.CenterOnScreen()
	window.ShowAndRun()
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	quit := make(chan os.Signal, 1)
	signalNotify(quit, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-quit
		cancel()
	}()
	return ctx
}
