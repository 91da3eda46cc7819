package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// EventKind tags a structured log event for subscribers.
type EventKind string

const (
	EventTrade        EventKind = "trade"
	EventSalary       EventKind = "salary"
	EventTransfer     EventKind = "transfer"
	EventHire         EventKind = "hire"
	EventFire         EventKind = "fire"
	EventFirmFounded  EventKind = "firm_founded"
	EventFirmBankrupt EventKind = "firm_bankrupt"
	EventProduction   EventKind = "production"
	EventNarration    EventKind = "narration"
)

// LogEvent is one entry of the structured event stream the engine exposes to
// presentation layers. Ordering is only guaranteed within a tick.
type LogEvent struct {
	Day  int
	Kind EventKind
	Text string
}

// EventSink receives structured log events. The engine appends, subscribers
// (UI panel, telemetry sink, tests) read.
type EventSink interface {
	Emit(ev LogEvent)
}

// EventLog is the default in-memory sink: an append-front deque of events,
// newest first, mirrored to logrus at debug level.
type EventLog struct {
	entries []LogEvent
}

// NewEventLog returns an empty event log.
func NewEventLog() *EventLog {
	return &EventLog{}
}

// Emit records an event at the front of the log.
func (l *EventLog) Emit(ev LogEvent) {
	l.entries = append(l.entries, ev)
	logrus.Debugf("day %d [%s] %s", ev.Day, ev.Kind, ev.Text)
}

// Addf formats and records an event.
func (l *EventLog) Addf(day int, kind EventKind, format string, args ...any) {
	l.Emit(LogEvent{Day: day, Kind: kind, Text: fmt.Sprintf(format, args...)})
}

// Entries returns the recorded events, newest first.
func (l *EventLog) Entries() []LogEvent {
	out := make([]LogEvent, len(l.entries))
	for i, ev := range l.entries {
		out[len(l.entries)-1-i] = ev
	}
	return out
}

// Len returns the number of recorded events.
func (l *EventLog) Len() int {
	return len(l.entries)
}
