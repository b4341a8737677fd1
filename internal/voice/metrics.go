package voice

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Utterance outcome labels.
const (
	OutcomeNumber  = "number"
	OutcomeCommand = "command"
	OutcomeDropped = "dropped"
	OutcomeError   = "error"
)

// Metrics holds the pipeline counters. A nil *Metrics records nothing.
type Metrics struct {
	Blocks     prometheus.Counter
	Discarded  prometheus.Counter
	Utterances *prometheus.CounterVec
}

// NewMetrics creates the pipeline counters and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Blocks: factory.NewCounter(prometheus.CounterOpts{
			Name: "packassist_voice_blocks_total",
			Help: "Total number of audio blocks captured",
		}),
		Discarded: factory.NewCounter(prometheus.CounterOpts{
			Name: "packassist_voice_blocks_discarded_total",
			Help: "Total number of audio blocks discarded on resume or stop",
		}),
		Utterances: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "packassist_voice_utterances_total",
			Help: "Total number of finished utterances by outcome",
		}, []string{"result"}),
	}
}

func (m *Metrics) blockCaptured() {
	if m != nil {
		m.Blocks.Inc()
	}
}

func (m *Metrics) blocksDiscarded(n int) {
	if m != nil && n > 0 {
		m.Discarded.Add(float64(n))
	}
}

func (m *Metrics) utterance(outcome string) {
	if m != nil {
		m.Utterances.WithLabelValues(outcome).Inc()
	}
}
