package voice

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the pipeline logger.
func WithLogger(l *zap.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithMetrics records pipeline counters in m.
func WithMetrics(m *Metrics) Option {
	return func(p *Pipeline) { p.metrics = m }
}

// WithDump copies every recognized block to w.
func WithDump(w BlockWriter) Option {
	return func(p *Pipeline) { p.dump = w }
}

// WithStartSuspended makes Start enter the Suspended state.
func WithStartSuspended(suspended bool) Option {
	return func(p *Pipeline) { p.startSuspended = suspended }
}

// Pipeline is the voice command state machine. One mutex and condition
// variable guard the running and suspended flags together with the block
// queue, so a resume clears the queue atomically with the flag flip.
type Pipeline struct {
	source     Source
	recognizer Recognizer
	interp     *Interpreter
	handler    Handler

	logger         *zap.Logger
	metrics        *Metrics
	dump           BlockWriter
	startSuspended bool

	mu        sync.Mutex
	cond      *sync.Cond
	running   bool
	suspended bool
	gen       int
	queue     blockQueue
	done      chan struct{}
}

// NewPipeline wires a pipeline. It does not touch the audio device until Start.
func NewPipeline(source Source, recognizer Recognizer, interp *Interpreter, handler Handler, opts ...Option) *Pipeline {
	p := &Pipeline{
		source:     source,
		recognizer: recognizer,
		interp:     interp,
		handler:    handler,
		logger:     zap.NewNop(),
	}
	p.cond = sync.NewCond(&p.mu)
	for _, opt := range opts {
		opt(p)
	}
	if p.interp == nil {
		p.interp = NewInterpreter(InterpreterConfig{}, p.logger)
	}
	if p.handler == nil {
		p.handler = HandlerFunc(func(Result) {})
	}
	return p
}

// State returns the current state.
func (p *Pipeline) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stateLocked()
}

func (p *Pipeline) stateLocked() State {
	switch {
	case !p.running:
		return StateStopped
	case p.suspended:
		return StateSuspended
	default:
		return StateListening
	}
}

// Start opens the audio source and spawns the worker goroutine. If the
// source cannot be started the pipeline stays stopped. The recognizer is
// single-threaded, so Start fails with ErrWorkerBusy until the worker of
// the previous run has exited.
func (p *Pipeline) Start() error {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return ErrAlreadyStarted
	}
	if p.done != nil {
		select {
		case <-p.done:
		default:
			p.mu.Unlock()
			return ErrWorkerBusy
		}
	}
	p.running = true
	p.suspended = p.startSuspended
	p.gen++
	gen := p.gen
	p.queue.clear()
	done := make(chan struct{})
	p.done = done
	p.mu.Unlock()

	if err := p.source.Start(p.Push); err != nil {
		p.mu.Lock()
		p.running = false
		p.queue.clear()
		p.mu.Unlock()
		close(done)
		return fmt.Errorf("start audio source: %w", err)
	}

	go p.run(gen, done)
	p.logger.Info("voice pipeline started", zap.Stringer("state", p.State()))
	return nil
}

// Push queues one audio block. It is called from the audio callback, never
// blocks on recognition and drops the block only when the pipeline is
// stopped. The pipeline takes ownership of block.
func (p *Pipeline) Push(block []byte) {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.queue.push(block)
	p.cond.Signal()
	p.mu.Unlock()
	p.metrics.blockCaptured()
}

// Suspend pauses recognition. Blocks keep arriving but are discarded by
// the next Resume.
func (p *Pipeline) Suspend() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running && !p.suspended {
		p.suspended = true
		p.logger.Debug("voice pipeline suspended")
	}
}

// Resume discards all buffered audio and continues recognition.
func (p *Pipeline) Resume() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.resumeLocked()
}

func (p *Pipeline) resumeLocked() {
	if !p.running || !p.suspended {
		return
	}
	dropped := p.queue.clear()
	p.suspended = false
	p.cond.Broadcast()
	p.metrics.blocksDiscarded(dropped)
	p.logger.Debug("voice pipeline resumed", zap.Int("discarded_blocks", dropped))
}

// Toggle switches between Listening and Suspended and returns the new state.
func (p *Pipeline) Toggle() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.suspended {
		p.resumeLocked()
	} else if p.running {
		p.suspended = true
	}
	return p.stateLocked()
}

// Stop clears the run flag, stops the audio source and waits for the worker
// to finish its current block. If ctx ends first the worker is left to
// finish on its own and Start refuses to run until it has. It must not be
// called from a Handler.
func (p *Pipeline) Stop(ctx context.Context) error {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return ErrNotRunning
	}
	p.running = false
	p.suspended = false
	dropped := p.queue.clear()
	p.cond.Broadcast()
	done := p.done
	p.mu.Unlock()
	p.metrics.blocksDiscarded(dropped)

	srcErr := p.source.Stop()

	select {
	case <-done:
	case <-ctx.Done():
		return fmt.Errorf("wait for voice worker: %w", ctx.Err())
	}
	p.logger.Info("voice pipeline stopped")
	if srcErr != nil {
		return fmt.Errorf("stop audio source: %w", srcErr)
	}
	return nil
}

func (p *Pipeline) run(gen int, done chan struct{}) {
	defer close(done)
	for {
		block, ok := p.next(gen)
		if !ok {
			return
		}
		p.process(block)
	}
}

// next blocks until a block is available while listening. ok is false once
// the pipeline generation gen has been stopped.
func (p *Pipeline) next(gen int) (block []byte, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for p.live(gen) && (p.suspended || p.queue.len() == 0) {
		p.cond.Wait()
	}
	if !p.live(gen) {
		return nil, false
	}
	return p.queue.pop()
}

func (p *Pipeline) live(gen int) bool {
	return p.running && p.gen == gen
}

func (p *Pipeline) process(block []byte) {
	if p.dump != nil {
		if err := p.dump.WriteBlock(block); err != nil {
			p.logger.Warn("audio dump failed, disabling", zap.Error(err))
			p.dump = nil
		}
	}

	final, err := p.recognizer.AcceptWaveform(block)
	if err != nil {
		p.logger.Warn("recognizer rejected audio block", zap.Error(err))
		p.metrics.utterance(OutcomeError)
		return
	}
	if !final {
		return
	}
	text, err := p.recognizer.Result()
	if err != nil {
		p.logger.Warn("recognizer result failed", zap.Error(err))
		p.metrics.utterance(OutcomeError)
		return
	}

	result, ok := p.interp.Interpret(text)
	if !ok {
		p.metrics.utterance(OutcomeDropped)
		return
	}
	outcome := OutcomeNumber
	if result.IsCommand {
		outcome = OutcomeCommand
	}
	p.metrics.utterance(outcome)
	p.logger.Debug("utterance dispatched", zap.String("value", result.Value), zap.Bool("command", result.IsCommand))
	p.handler.HandleResult(result)
}
