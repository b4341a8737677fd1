package voice

// State of the pipeline.
type State int

const (
	StateStopped State = iota
	StateSuspended
	StateListening
)

func (s State) String() string {
	switch s {
	case StateSuspended:
		return "Suspended"
	case StateListening:
		return "Listening"
	default:
		return "Stopped"
	}
}

// Result is an interpreted utterance. Value is either a decimal number
// ("12.5") or a command name ("next") when IsCommand is set.
type Result struct {
	Value     string
	IsCommand bool
}

// Handler receives interpreted utterances on the pipeline worker goroutine.
type Handler interface {
	HandleResult(Result)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(Result)

// HandleResult calls f(r).
func (f HandlerFunc) HandleResult(r Result) { f(r) }

// Recognizer is a streaming speech-to-text engine. It is only ever called
// from the pipeline worker goroutine.
type Recognizer interface {
	// AcceptWaveform consumes one block of 16-bit little-endian mono PCM and
	// reports whether an utterance boundary was reached.
	AcceptWaveform(block []byte) (bool, error)
	// Result returns the final transcript of the finished utterance.
	Result() (string, error)
}

// Source captures audio and pushes fixed-size PCM blocks until stopped.
// push must never be called after Stop returns.
type Source interface {
	Start(push func(block []byte)) error
	Stop() error
}

// BlockWriter receives a copy of every block passed to the recognizer.
type BlockWriter interface {
	WriteBlock(block []byte) error
}
