package application

import (
	"go.uber.org/zap"

	"github.com/piwi3910/packassist/internal/selection"
	"github.com/piwi3910/packassist/internal/voice"
)

// Outcome describes what a dispatched voice result did.
type Outcome struct {
	Changed bool   // Selection or weight changed
	Suspend bool   // Listening should pause
	Reply   string // Text to show the operator
}

// Dispatcher applies voice results to the selection: a number weighs the
// selected sample and advances, next/previous step by one, clear erases the
// selected weight and end asks the caller to suspend listening.
type Dispatcher struct {
	nav    *selection.Navigator
	logger *zap.Logger
}

// NewDispatcher binds a dispatcher to nav.
func NewDispatcher(nav *selection.Navigator, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{nav: nav, logger: logger}
}

// Dispatch applies r. It must run on the goroutine that owns the layout.
func (d *Dispatcher) Dispatch(r voice.Result) (Outcome, error) {
	if !r.IsCommand {
		if err := d.nav.SetWeightText(r.Value, true); err != nil {
			d.logger.Debug("weight not applied", zap.String("value", r.Value), zap.Error(err))
			return Outcome{}, err
		}
		return Outcome{Changed: true}, nil
	}

	switch r.Value {
	case voice.CommandNext:
		return Outcome{Changed: d.nav.Step(selection.Forward, selection.Unit)}, nil
	case voice.CommandPrevious:
		return Outcome{Changed: d.nav.Step(selection.Backward, selection.Unit)}, nil
	case voice.CommandClear:
		if err := d.nav.SetWeight(nil, false); err != nil {
			return Outcome{}, err
		}
		return Outcome{Changed: true}, nil
	case voice.CommandEnd:
		return Outcome{Suspend: true}, nil
	default:
		return Outcome{Reply: r.Value}, nil
	}
}
