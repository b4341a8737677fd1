package voice

import "errors"

var (
	// ErrNoDevice is returned when no audio input device can be opened.
	ErrNoDevice = errors.New("audio input device unavailable")
	// ErrAlreadyStarted is returned by Start on a running pipeline.
	ErrAlreadyStarted = errors.New("voice pipeline already started")
	// ErrNotRunning is returned by Stop on a stopped pipeline.
	ErrNotRunning = errors.New("voice pipeline not running")
	// ErrWorkerBusy is returned by Start while the worker of a previous run,
	// abandoned by a timed out Stop, is still inside the recognizer.
	ErrWorkerBusy = errors.New("voice worker of previous run still busy")
)
