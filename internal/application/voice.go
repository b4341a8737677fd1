package application

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/piwi3910/packassist/internal/config"
	"github.com/piwi3910/packassist/internal/voice"
)

var (
	// ErrVoiceDisabled is returned by OpenVoice when voice input is off.
	ErrVoiceDisabled = errors.New("voice input is disabled")
	// ErrNoVoiceBackend is returned by OpenVoice when no backend was configured.
	ErrNoVoiceBackend = errors.New("no voice backend configured")
)

// Devices are the audio source and speech recognizer of a voice session.
// Close releases the recognizer once the pipeline has stopped.
type Devices struct {
	Source     voice.Source
	Recognizer voice.Recognizer
	Close      func() error
}

// VoiceBackend opens the devices described by cfg.
type VoiceBackend func(cfg config.VoiceConfig, logger *zap.Logger) (Devices, error)

// Voice is a running voice session.
type Voice struct {
	pipeline *voice.Pipeline
	devices  Devices
	dump     *voice.WAVDump
}

// Pipeline returns the session's state machine.
func (v *Voice) Pipeline() *voice.Pipeline { return v.pipeline }

// Close stops the pipeline and releases the devices and the audio dump.
func (v *Voice) Close(ctx context.Context) error {
	var errs []error
	if err := v.pipeline.Stop(ctx); err != nil && !errors.Is(err, voice.ErrNotRunning) {
		errs = append(errs, err)
	}
	if v.devices.Close != nil {
		if err := v.devices.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if v.dump != nil {
		if err := v.dump.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// OpenVoice builds a voice pipeline that delivers interpreted utterances to
// handler. The pipeline is not started.
func (a *App) OpenVoice(handler voice.Handler) (*Voice, error) {
	vc := a.cfg.Voice
	if !vc.Enabled {
		return nil, ErrVoiceDisabled
	}
	if a.backend == nil {
		return nil, ErrNoVoiceBackend
	}

	logger := a.logger.Named("voice")
	devices, err := a.backend(vc, logger)
	if err != nil {
		return nil, fmt.Errorf("open voice devices: %w", err)
	}

	opts := []voice.Option{
		voice.WithLogger(logger),
		voice.WithMetrics(a.metrics),
		voice.WithStartSuspended(vc.StartSuspended),
	}
	v := &Voice{devices: devices}
	if vc.AudioDump != "" {
		dump, err := voice.CreateWAVDump(vc.AudioDump, vc.SampleRate)
		if err != nil {
			if devices.Close != nil {
				_ = devices.Close()
			}
			return nil, err
		}
		v.dump = dump
		opts = append(opts, voice.WithDump(dump))
	}

	interp := voice.NewInterpreter(vc.Interpreter(), logger)
	v.pipeline = voice.NewPipeline(devices.Source, devices.Recognizer, interp, handler, opts...)
	return v, nil
}
