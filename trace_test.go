// This file is part of https://github.com/racingmars/go3270/
// Copyright 2025 by Matthew R. Wilson, licensed under the MIT license. See
// LICENSE in the project root for license information.

package tn3270e

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNoopSinkDiscards(t *testing.T) {
	var sink TraceSink = NoopSink{}
	assert.NotPanics(t, func() {
		sink.Record(Event{Kind: "telnet"})
	})
}

func TestRecordSkipsNilSink(t *testing.T) {
	assert.NotPanics(t, func() {
		record(nil, time.Now(), Event{Kind: "error"})
	})
}

func TestRecordStampsRelativeTime(t *testing.T) {
	var got Event
	sink := recordingSink{fn: func(e Event) { got = e }}
	start := time.Now().Add(-time.Second)
	record(sink, start, Event{Kind: "order"})
	assert.Equal(t, "order", got.Kind)
	assert.GreaterOrEqual(t, got.Time, time.Second)
}

func TestHexString(t *testing.T) {
	assert.Equal(t, "00ff1a", hexString([]byte{0x00, 0xff, 0x1a}))
}

func TestSubnegEventFields(t *testing.T) {
	e := subnegEvent(0x28, []byte{0x01, 0x02})
	assert.Equal(t, "subneg", e.Kind)
	assert.Equal(t, "0102", e.Fields["payload_hex"])
	assert.Equal(t, 2, e.Fields["length"])
}

type recordingSink struct {
	fn func(Event)
}

func (r recordingSink) Record(e Event) { r.fn(e) }
