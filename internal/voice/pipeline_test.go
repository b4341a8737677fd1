package voice

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const waitTimeout = 2 * time.Second

// fakeSource records the push callback so tests act as the audio driver.
type fakeSource struct {
	mu       sync.Mutex
	push     func([]byte)
	startErr error
	stopped  bool
}

func (s *fakeSource) Start(push func([]byte)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.startErr != nil {
		return s.startErr
	}
	s.push = push
	s.stopped = false
	return nil
}

func (s *fakeSource) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	return nil
}

func (s *fakeSource) send(text string) {
	s.mu.Lock()
	push := s.push
	s.mu.Unlock()
	push([]byte(text))
}

// fakeRecognizer treats every block as one finished utterance whose
// transcript is the block content. "!error" fails the block.
type fakeRecognizer struct {
	mu   sync.Mutex
	seen []string
	last string
}

func (r *fakeRecognizer) AcceptWaveform(block []byte) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	text := string(block)
	r.seen = append(r.seen, text)
	if text == "!error" {
		return false, errors.New("bad block")
	}
	r.last = text
	return true, nil
}

func (r *fakeRecognizer) Result() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last, nil
}

func (r *fakeRecognizer) blocks() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.seen...)
}

type harness struct {
	source     *fakeSource
	recognizer *fakeRecognizer
	results    chan Result
	metrics    *Metrics
	pipeline   *Pipeline
}

func newHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()
	h := &harness{
		source:     &fakeSource{},
		recognizer: &fakeRecognizer{},
		results:    make(chan Result, 16),
		metrics:    NewMetrics(prometheus.NewRegistry()),
	}
	logger := zaptest.NewLogger(t)
	opts = append([]Option{WithLogger(logger), WithMetrics(h.metrics)}, opts...)
	h.pipeline = NewPipeline(h.source, h.recognizer, NewInterpreter(InterpreterConfig{}, logger),
		HandlerFunc(func(r Result) { h.results <- r }), opts...)
	return h
}

func (h *harness) next(t *testing.T) Result {
	t.Helper()
	select {
	case r := <-h.results:
		return r
	case <-time.After(waitTimeout):
		t.Fatal("timed out waiting for a result")
		return Result{}
	}
}

func (h *harness) stop(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), waitTimeout)
	defer cancel()
	require.NoError(t, h.pipeline.Stop(ctx))
}

// ─── Lifecycle Tests ───

func TestPipelineStartStop(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, StateStopped, h.pipeline.State())

	require.NoError(t, h.pipeline.Start())
	assert.Equal(t, StateListening, h.pipeline.State())
	assert.ErrorIs(t, h.pipeline.Start(), ErrAlreadyStarted)

	h.stop(t)
	assert.Equal(t, StateStopped, h.pipeline.State())
	assert.True(t, h.source.stopped)

	err := h.pipeline.Stop(context.Background())
	assert.ErrorIs(t, err, ErrNotRunning)
}

func TestPipelineStartFailsWithoutDevice(t *testing.T) {
	h := newHarness(t)
	h.source.startErr = ErrNoDevice

	err := h.pipeline.Start()
	assert.ErrorIs(t, err, ErrNoDevice)
	assert.Equal(t, StateStopped, h.pipeline.State())
}

func TestPipelineRestart(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.pipeline.Start())
	h.stop(t)

	require.NoError(t, h.pipeline.Start())
	h.source.send("пять")
	assert.Equal(t, Result{Value: "5"}, h.next(t))
	h.stop(t)
}

func TestPushAfterStopIsIgnored(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.pipeline.Start())
	h.stop(t)

	h.pipeline.Push([]byte("один"))
	assert.Equal(t, 0.0, testutil.ToFloat64(h.metrics.Blocks))
	assert.Empty(t, h.recognizer.blocks())
}

// blockingRecognizer holds every block until release is closed.
type blockingRecognizer struct {
	entered chan struct{}
	release chan struct{}
}

func (r *blockingRecognizer) AcceptWaveform([]byte) (bool, error) {
	r.entered <- struct{}{}
	<-r.release
	return false, nil
}

func (r *blockingRecognizer) Result() (string, error) { return "", nil }

func TestRestartWaitsForAbandonedWorker(t *testing.T) {
	source := &fakeSource{}
	rec := &blockingRecognizer{entered: make(chan struct{}, 1), release: make(chan struct{})}
	p := NewPipeline(source, rec, nil, nil, WithLogger(zaptest.NewLogger(t)))

	require.NoError(t, p.Start())
	source.send("один")
	select {
	case <-rec.entered:
	case <-time.After(waitTimeout):
		t.Fatal("worker never reached the recognizer")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, p.Stop(ctx), context.DeadlineExceeded)
	assert.Equal(t, StateStopped, p.State())
	assert.ErrorIs(t, p.Start(), ErrWorkerBusy)

	close(rec.release)
	assert.Eventually(t, func() bool { return p.Start() == nil }, waitTimeout, 5*time.Millisecond)
	assert.Equal(t, StateListening, p.State())
	require.NoError(t, p.Stop(context.Background()))
}

// ─── Dispatch Tests ───

func TestPipelineDispatchesInOrder(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.pipeline.Start())
	defer h.stop(t)

	for _, text := range []string{"один два три", "абракадабра", "стоп", "!error", "ноль точка пять"} {
		h.source.send(text)
	}

	assert.Equal(t, Result{Value: "123"}, h.next(t))
	assert.Equal(t, Result{Value: CommandEnd, IsCommand: true}, h.next(t))
	assert.Equal(t, Result{Value: "0.5"}, h.next(t))

	assert.Equal(t, 5.0, testutil.ToFloat64(h.metrics.Blocks))
	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.Utterances.WithLabelValues(OutcomeDropped)))
	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.Utterances.WithLabelValues(OutcomeError)))
	assert.Equal(t, 2.0, testutil.ToFloat64(h.metrics.Utterances.WithLabelValues(OutcomeNumber)))
	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.Utterances.WithLabelValues(OutcomeCommand)))
}

// ─── Suspend/Resume Tests ───

func TestSuspendedAudioNeverReachesRecognizer(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.pipeline.Start())
	defer h.stop(t)

	h.source.send("один")
	assert.Equal(t, Result{Value: "1"}, h.next(t))

	h.pipeline.Suspend()
	assert.Equal(t, StateSuspended, h.pipeline.State())
	h.source.send("два")
	h.source.send("три")

	h.pipeline.Resume()
	assert.Equal(t, StateListening, h.pipeline.State())
	h.source.send("четыре")
	assert.Equal(t, Result{Value: "4"}, h.next(t))

	assert.Equal(t, []string{"один", "четыре"}, h.recognizer.blocks())
	assert.Equal(t, 2.0, testutil.ToFloat64(h.metrics.Discarded))
}

func TestStartSuspended(t *testing.T) {
	h := newHarness(t, WithStartSuspended(true))
	require.NoError(t, h.pipeline.Start())
	defer h.stop(t)
	assert.Equal(t, StateSuspended, h.pipeline.State())

	h.source.send("девять")
	assert.Equal(t, StateListening, h.pipeline.Toggle())
	h.source.send("восемь")

	assert.Equal(t, Result{Value: "8"}, h.next(t))
	assert.Equal(t, []string{"восемь"}, h.recognizer.blocks())
}

func TestToggle(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, StateStopped, h.pipeline.Toggle(), "toggle does nothing while stopped")

	require.NoError(t, h.pipeline.Start())
	defer h.stop(t)
	assert.Equal(t, StateSuspended, h.pipeline.Toggle())
	assert.Equal(t, StateListening, h.pipeline.Toggle())
}

func TestStopWhileSuspended(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.pipeline.Start())
	h.pipeline.Suspend()
	h.source.send("один")

	h.stop(t)
	assert.Empty(t, h.recognizer.blocks())
	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.Discarded))
}

// ─── Queue Tests ───

func TestBlockQueue(t *testing.T) {
	var q blockQueue
	_, ok := q.pop()
	assert.False(t, ok)

	q.push([]byte("a"))
	q.push([]byte("b"))
	assert.Equal(t, 2, q.len())

	b, ok := q.pop()
	require.True(t, ok)
	assert.Equal(t, "a", string(b))

	assert.Equal(t, 1, q.clear())
	assert.Equal(t, 0, q.len())
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	m.blockCaptured()
	m.blocksDiscarded(3)
	m.utterance(OutcomeNumber)
}
