package service

import "time"

// Clock returns the current time. Services read "today" from it when
// computing ages.
type Clock func() time.Time

// Recorder receives business events worth counting. The metrics package
// provides the production implementation.
type Recorder interface {
	RecordCreated(entity string)
	RecordRejection(entity, field string)
}

type noopRecorder struct{}

func (noopRecorder) RecordCreated(string)           {}
func (noopRecorder) RecordRejection(string, string) {}

type options struct {
	clock    Clock
	recorder Recorder
}

// Option configures a service.
type Option func(*options)

// WithClock overrides time.Now.
func WithClock(c Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithRecorder reports creations and rejected writes to r.
func WithRecorder(r Recorder) Option {
	return func(o *options) {
		if r != nil {
			o.recorder = r
		}
	}
}

func newOptions(opts []Option) options {
	o := options{clock: time.Now, recorder: noopRecorder{}}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// clampPage normalizes paging input: page < 1 becomes 1, pageSize < 1
// becomes 10 and anything above 100 is capped.
func clampPage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}
