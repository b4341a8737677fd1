package application

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/piwi3910/packassist/internal/voice"
)

const stopTimeout = 2 * time.Second

// ExportOptions selects the outputs of a headless export.
type ExportOptions struct {
	Input    string
	Outputs  []string // .xlsx or .pdf map files
	Labels   string   // Optional label sheet PDF
	Shipment string   // Overrides the number taken from the file name
}

// RunExport imports a list and writes every requested output.
func (a *App) RunExport(opts ExportOptions) error {
	if _, err := a.Open(opts.Input); err != nil {
		return err
	}
	if opts.Shipment != "" {
		a.SetShipment(opts.Shipment)
	}
	for _, out := range opts.Outputs {
		if err := a.Export(out); err != nil {
			return err
		}
	}
	if opts.Labels != "" {
		if err := a.ExportLabels(opts.Labels); err != nil {
			return err
		}
	}
	return nil
}

// Listen runs the voice pipeline and prints every dispatched result to w,
// one "<kind>\t<value>" line each, until ctx is done.
func (a *App) Listen(ctx context.Context, w io.Writer) error {
	v, err := a.OpenVoice(voice.HandlerFunc(func(r voice.Result) {
		kind := voice.OutcomeNumber
		if r.IsCommand {
			kind = voice.OutcomeCommand
		}
		fmt.Fprintf(w, "%s\t%s\n", kind, r.Value)
	}))
	if err != nil {
		return err
	}
	if err := v.Pipeline().Start(); err != nil {
		_ = v.Close(context.Background())
		return err
	}
	a.logger.Info("listening", zap.String("state", v.Pipeline().State().String()))

	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()
	return v.Close(stopCtx)
}
