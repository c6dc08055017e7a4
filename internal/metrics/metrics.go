package metrics

import "time"

type Recorder interface {
	ObserveCommand(command, outcome string, duration time.Duration)
	ObserveModelCall(status string, duration time.Duration)
	AddHistoryPages(n int)
}

// Nop discards every observation.
type Nop struct{}

func (Nop) ObserveCommand(string, string, time.Duration) {}
func (Nop) ObserveModelCall(string, time.Duration)       {}
func (Nop) AddHistoryPages(int)                          {}
