package model

import "fmt"

// SampleList is the ordered, index-addressable collection of samples.
// Indices are always contiguous 0..Len()-1. It is not safe for concurrent use.
type SampleList struct {
	items []Sample
}

// NewSampleList creates a list holding copies of the given samples.
func NewSampleList(samples ...Sample) *SampleList {
	return &SampleList{items: CloneSamples(samples)}
}

// Len returns the number of samples.
func (l *SampleList) Len() int {
	return len(l.items)
}

// Get returns the sample at index i.
func (l *SampleList) Get(i int) (Sample, bool) {
	if i < 0 || i >= len(l.items) {
		return Sample{}, false
	}
	return l.items[i].Clone(), true
}

// Samples returns a deep copy of all samples in packing order.
func (l *SampleList) Samples() []Sample {
	return CloneSamples(l.items)
}

// Replace discards the current content and stores copies of samples.
func (l *SampleList) Replace(samples []Sample) {
	l.items = CloneSamples(samples)
}

// Insert places samples so that the first one ends up at index at.
// at may equal Len() to append.
func (l *SampleList) Insert(at int, samples ...Sample) error {
	if at < 0 || at > len(l.items) {
		return fmt.Errorf("%w: insert at %d with %d samples", ErrIndexOutOfRange, at, len(l.items))
	}
	if len(samples) == 0 {
		return nil
	}
	items := make([]Sample, 0, len(l.items)+len(samples))
	items = append(items, l.items[:at]...)
	items = append(items, CloneSamples(samples)...)
	items = append(items, l.items[at:]...)
	l.items = items
	return nil
}

// Remove deletes and returns the sample at index at.
func (l *SampleList) Remove(at int) (Sample, error) {
	if at < 0 || at >= len(l.items) {
		return Sample{}, fmt.Errorf("%w: remove %d of %d", ErrIndexOutOfRange, at, len(l.items))
	}
	removed := l.items[at]
	l.items = append(l.items[:at], l.items[at+1:]...)
	return removed, nil
}

// Move relocates the sample at from so that it ends up at index to,
// preserving the relative order of all other samples.
func (l *SampleList) Move(from, to int) error {
	n := len(l.items)
	if from < 0 || from >= n || to < 0 || to >= n {
		return fmt.Errorf("%w: move %d to %d of %d", ErrIndexOutOfRange, from, to, n)
	}
	if from == to {
		return nil
	}
	s := l.items[from]
	if from < to {
		copy(l.items[from:to], l.items[from+1:to+1])
	} else {
		copy(l.items[to+1:from+1], l.items[to:from])
	}
	l.items[to] = s
	return nil
}

// SetWeight sets or clears (nil) the weight of the sample at index i.
func (l *SampleList) SetWeight(i int, w *float64) error {
	if i < 0 || i >= len(l.items) {
		return fmt.Errorf("%w: weigh %d of %d", ErrIndexOutOfRange, i, len(l.items))
	}
	if w == nil {
		l.items[i].Weight = nil
		return nil
	}
	if err := ValidateWeight(*w); err != nil {
		return err
	}
	v := *w
	l.items[i].Weight = &v
	return nil
}
