package ui

import (
	"github.com/wsl-tools/wslsync/internal/event"
	"github.com/wsl-tools/wslsync/internal/stats"
)

// quietPresenter consumes events but produces no output.
type quietPresenter struct {
	stats *stats.Collector
}

func (p *quietPresenter) Run(events <-chan event.Event) error {
	for range events {
		// Counters live on the collector, written by the engine;
		// presenters only read from it, never write.
	}
	return nil
}

func (p *quietPresenter) Summary() string {
	return ""
}
