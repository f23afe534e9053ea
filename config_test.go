// This file is part of https://github.com/racingmars/go3270/
// Copyright 2025 by Matthew R. Wilson, licensed under the MIT license. See
// LICENSE in the project root for license information.

package tn3270e

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfigGeometryDefaultsToModel2(t *testing.T) {
	var c Config
	rows, cols := c.geometry()
	assert.Equal(t, 24, rows)
	assert.Equal(t, 80, cols)
}

func TestConfigGeometryModel5(t *testing.T) {
	c := Config{Model: 5}
	rows, cols := c.geometry()
	assert.Equal(t, 27, rows)
	assert.Equal(t, 132, cols)
}

func TestConfigDeviceTypeBasic(t *testing.T) {
	c := Config{Model: 3}
	assert.Equal(t, "IBM-3278-3", c.deviceType())
}

func TestConfigDeviceTypeExtended(t *testing.T) {
	c := Config{Model: 2, Extended: true}
	assert.Equal(t, "IBM-3279-2-E", c.deviceType())
}

func TestConfigCodepageDefaultsTo037(t *testing.T) {
	var c Config
	assert.Equal(t, "037", c.codepage().ID())
}

func TestConfigCodepageHonorsName(t *testing.T) {
	c := Config{CodePage: "1047"}
	assert.Equal(t, "1047", c.codepage().ID())
}

func TestConfigNegotiationTimeoutDefault(t *testing.T) {
	var c Config
	assert.Equal(t, DefaultNegotiationTimeout, c.negotiationTimeout())
}

func TestConfigNegotiationTimeoutHonorsOverride(t *testing.T) {
	c := Config{NegotiationTimeout: 5 * time.Second}
	assert.Equal(t, 5*time.Second, c.negotiationTimeout())
}

func TestConfigTraceSinkDefaultsToNoop(t *testing.T) {
	var c Config
	_, ok := c.traceSink().(NoopSink)
	assert.True(t, ok)
}

func TestConfigAddress(t *testing.T) {
	c := Config{Host: "mainframe.example.com", Port: 23}
	assert.Equal(t, "mainframe.example.com:23", c.address())
}
