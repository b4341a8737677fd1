// Package vosk adapts the Vosk offline speech recognizer to voice.Recognizer.
package vosk

import (
	"errors"
	"fmt"

	vapi "github.com/alphacep/vosk-api/go"

	"github.com/piwi3910/packassist/internal/voice"
)

var errWaveform = errors.New("vosk rejected waveform")

// Recognizer streams PCM into a Vosk recognizer. It must only be used from
// one goroutine, the pipeline worker.
type Recognizer struct {
	model *vapi.VoskModel
	rec   *vapi.VoskRecognizer
}

var _ voice.Recognizer = (*Recognizer)(nil)

// Open loads the model at modelPath and creates a recognizer for sampleRate.
func Open(modelPath string, sampleRate int) (*Recognizer, error) {
	vapi.SetLogLevel(-1)
	model, err := vapi.NewModel(modelPath)
	if err != nil {
		return nil, fmt.Errorf("load vosk model %s: %w", modelPath, err)
	}
	rec, err := vapi.NewRecognizer(model, float64(sampleRate))
	if err != nil {
		model.Free()
		return nil, fmt.Errorf("create vosk recognizer: %w", err)
	}
	return &Recognizer{model: model, rec: rec}, nil
}

// AcceptWaveform feeds one block and reports an utterance boundary.
func (r *Recognizer) AcceptWaveform(block []byte) (bool, error) {
	switch r.rec.AcceptWaveform(block) {
	case 1:
		return true, nil
	case 0:
		return false, nil
	default:
		return false, errWaveform
	}
}

// Result returns the transcript of the finished utterance.
func (r *Recognizer) Result() (string, error) {
	return voice.DecodeTranscript([]byte(r.rec.Result()))
}

// Close releases the recognizer and its model.
func (r *Recognizer) Close() {
	r.rec.Free()
	r.model.Free()
}
