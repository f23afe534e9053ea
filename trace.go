// This file is part of https://github.com/racingmars/go3270/
// Copyright 2025 by Matthew R. Wilson, licensed under the MIT license. See
// LICENSE in the project root for license information.

package tn3270e

import (
	"time"

	"github.com/charmbracelet/log"
)

// Event is one entry in a session's trace stream (spec §6
// "Trace-recorder sink"). Time is measured on the monotonic clock
// from the moment the Session was opened, not from the sink's
// creation; it is never wall-clock.
type Event struct {
	Time   time.Duration
	Kind   string
	Fields map[string]any
}

// TraceSink receives an ordered stream of negotiation and
// data-stream events from a Session. The core calls Record
// unconditionally -- it never branches on "tracing enabled" -- so a
// no-op sink must be cheap (spec §9 "Diagnostic trace sink").
type TraceSink interface {
	Record(e Event)
}

// NoopSink discards every event. It is the default TraceSink for a
// Config that does not set TraceRecorder.
type NoopSink struct{}

// Record implements TraceSink by doing nothing.
func (NoopSink) Record(Event) {}

// LogSink is a TraceSink that writes each event as a structured log
// line via charmbracelet/log, grounded on
// original_source/pure3270/protocol/trace_recorder.py's
// record(kind, **details) shape, translated into this module's
// ambient structured-logging library instead of that file's
// JSON-dump convenience.
type LogSink struct {
	logger *log.Logger
	start  time.Time
}

// NewLogSink creates a LogSink writing through logger. A nil logger
// uses log.Default().
func NewLogSink(logger *log.Logger) *LogSink {
	if logger == nil {
		logger = log.Default()
	}
	return &LogSink{logger: logger, start: time.Now()}
}

// Record logs e at debug level, with every field attached as a
// key/value pair.
func (s *LogSink) Record(e Event) {
	args := make([]any, 0, len(e.Fields)*2+2)
	args = append(args, "kind", e.Kind)
	for k, v := range e.Fields {
		args = append(args, k, v)
	}
	s.logger.Debug("trace", args...)
}

// telnetEvent records a single WILL/WONT/DO/DONT exchange.
func telnetEvent(direction, command string, option byte) Event {
	return Event{Kind: "telnet", Fields: map[string]any{
		"direction": direction,
		"command":   command,
		"option":    option,
	}}
}

// subnegEvent records a subnegotiation payload, hex-encoded per spec
// §6.
func subnegEvent(option byte, payload []byte) Event {
	return Event{Kind: "subneg", Fields: map[string]any{
		"option":      option,
		"payload_hex": hexString(payload),
		"length":      len(payload),
	}}
}

// modeDecisionEvent records the negotiator's mode-election outcome.
func modeDecisionEvent(requested, chosen string, fallback bool) Event {
	return Event{Kind: "mode_decision", Fields: map[string]any{
		"requested": requested,
		"chosen":    chosen,
		"fallback":  fallback,
	}}
}

// headerEvent records an inbound or outbound TN3270E record header.
func headerEvent(dataType string, seq uint16, flags string) Event {
	return Event{Kind: "tn3270e_header", Fields: map[string]any{
		"type":  dataType,
		"seq":   seq,
		"flags": flags,
	}}
}

// orderEvent records one parsed data-stream order.
func orderEvent(command string, address, length int) Event {
	return Event{Kind: "order", Fields: map[string]any{
		"command": command,
		"address": address,
		"length":  length,
	}}
}

// errorEvent records a diagnostic message for a non-fatal failure
// (spec §7 kinds 3-5: record-malformed, unsupported-feature,
// operator-inhibit).
func errorEvent(message string) Event {
	return Event{Kind: "error", Fields: map[string]any{"message": message}}
}

const hexDigits = "0123456789abcdef"

func hexString(b []byte) string {
	out := make([]byte, len(b)*2)
	for i, v := range b {
		out[i*2] = hexDigits[v>>4]
		out[i*2+1] = hexDigits[v&0x0f]
	}
	return string(out)
}

// record sends e to sink, stamping its Time relative to start, unless
// sink is nil.
func record(sink TraceSink, start time.Time, e Event) {
	if sink == nil {
		return
	}
	e.Time = time.Since(start)
	sink.Record(e)
}
