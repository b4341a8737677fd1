// Package mic captures microphone audio with PortAudio and feeds it to a
// voice pipeline as 16-bit mono PCM blocks.
package mic

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gordonklaus/portaudio"
	"go.uber.org/zap"

	"github.com/piwi3910/packassist/internal/voice"
)

// Config selects the capture device and block format.
type Config struct {
	Device     string // Substring of the device name; empty selects the default input
	SampleRate int
	BlockSize  int // Frames per pushed block
}

// Source is a PortAudio input stream.
type Source struct {
	cfg    Config
	logger *zap.Logger

	mu     sync.Mutex
	stream *portaudio.Stream
}

var _ voice.Source = (*Source)(nil)

// New creates a source. Nothing is opened until Start.
func New(cfg Config, logger *zap.Logger) *Source {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Source{cfg: cfg, logger: logger}
}

// Start opens the input device and begins pushing blocks from the
// PortAudio callback goroutine.
func (s *Source) Start(push func([]byte)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stream != nil {
		return voice.ErrAlreadyStarted
	}
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("initialize portaudio: %w", err)
	}

	dev, err := s.device()
	if err != nil {
		portaudio.Terminate()
		return err
	}
	params := portaudio.HighLatencyParameters(dev, nil)
	params.Input.Channels = 1
	params.SampleRate = float64(s.cfg.SampleRate)
	params.FramesPerBuffer = s.cfg.BlockSize

	stream, err := portaudio.OpenStream(params, func(in []int16) {
		push(voice.EncodePCM16(in))
	})
	if err != nil {
		portaudio.Terminate()
		return fmt.Errorf("open %s: %w: %v", dev.Name, voice.ErrNoDevice, err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return fmt.Errorf("start %s: %w: %v", dev.Name, voice.ErrNoDevice, err)
	}
	s.stream = stream
	s.logger.Info("microphone opened",
		zap.String("device", dev.Name),
		zap.Int("sample_rate", s.cfg.SampleRate),
		zap.Int("block_size", s.cfg.BlockSize))
	return nil
}

// Stop closes the stream. No block is pushed after it returns.
func (s *Source) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stream == nil {
		return nil
	}
	stopErr := s.stream.Stop()
	closeErr := s.stream.Close()
	s.stream = nil
	if err := portaudio.Terminate(); err != nil {
		s.logger.Warn("terminate portaudio", zap.Error(err))
	}
	if stopErr != nil {
		return fmt.Errorf("stop stream: %w", stopErr)
	}
	if closeErr != nil {
		return fmt.Errorf("close stream: %w", closeErr)
	}
	return nil
}

func (s *Source) device() (*portaudio.DeviceInfo, error) {
	if s.cfg.Device == "" {
		dev, err := portaudio.DefaultInputDevice()
		if err != nil || dev == nil {
			return nil, fmt.Errorf("default input: %w", voice.ErrNoDevice)
		}
		return dev, nil
	}
	devices, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("list devices: %w", err)
	}
	want := strings.ToLower(s.cfg.Device)
	for _, dev := range devices {
		if dev.MaxInputChannels > 0 && strings.Contains(strings.ToLower(dev.Name), want) {
			return dev, nil
		}
	}
	return nil, fmt.Errorf("input %q: %w", s.cfg.Device, voice.ErrNoDevice)
}

// InputDevices lists the names of all capture devices.
func InputDevices() ([]string, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("initialize portaudio: %w", err)
	}
	defer portaudio.Terminate()
	devices, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("list devices: %w", err)
	}
	var names []string
	for _, dev := range devices {
		if dev.MaxInputChannels > 0 {
			names = append(names, dev.Name)
		}
	}
	return names, nil
}
