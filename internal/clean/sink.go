package clean

import "github.com/rs/zerolog"

// ProgressSink receives progress from a run. Implementations must be safe
// to call from the run goroutine and should drop calls once their display
// is gone instead of failing.
type ProgressSink interface {
	OnStatus(text string)
	OnPercent(value float64)
}

// NopSink discards all progress.
type NopSink struct{}

func (NopSink) OnStatus(string)   {}
func (NopSink) OnPercent(float64) {}

// LogSink writes progress to a logger at debug level.
type LogSink struct {
	Logger zerolog.Logger
}

func (s LogSink) OnStatus(text string) {
	s.Logger.Debug().Str("status", text).Msg("progress")
}

func (s LogSink) OnPercent(value float64) {
	s.Logger.Debug().Float64("percent", value).Msg("progress")
}

// MultiSink fans progress out to several sinks in order.
type MultiSink []ProgressSink

func (m MultiSink) OnStatus(text string) {
	for _, s := range m {
		s.OnStatus(text)
	}
}

func (m MultiSink) OnPercent(value float64) {
	for _, s := range m {
		s.OnPercent(value)
	}
}
