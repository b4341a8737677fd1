package main

import (
	"go.uber.org/zap"

	"github.com/piwi3910/packassist/internal/application"
	"github.com/piwi3910/packassist/internal/config"
	"github.com/piwi3910/packassist/internal/voice/mic"
	"github.com/piwi3910/packassist/internal/voice/vosk"
)

// openDevices opens the microphone and the Vosk recognizer.
func openDevices(cfg config.VoiceConfig, logger *zap.Logger) (application.Devices, error) {
	rec, err := vosk.Open(cfg.ModelPath, cfg.SampleRate)
	if err != nil {
		return application.Devices{}, err
	}
	src := mic.New(mic.Config{
		Device:     cfg.Device,
		SampleRate: cfg.SampleRate,
		BlockSize:  cfg.BlockSize,
	}, logger.Named("mic"))
	return application.Devices{
		Source:     src,
		Recognizer: rec,
		Close: func() error {
			rec.Close()
			return nil
		},
	}, nil
}
