// This file is part of https://github.com/racingmars/go3270/
// Copyright 2020 by Matthew R. Wilson, licensed under the MIT license. See
// LICENSE in the project root for license information.

package host

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetPos(t *testing.T) {
	assert.Equal(t, []byte{0x40, 0x40}, getpos(0, 0))
	assert.Equal(t, []byte{0x4e, 0xd7}, getpos(11, 39))
}

func TestDecodeBufAddrRoundTripsGetPos(t *testing.T) {
	for _, tc := range []struct{ row, col int }{
		{0, 0}, {0, 79}, {11, 39}, {23, 79},
	} {
		enc := getpos(tc.row, tc.col)
		got := decodeBufAddr([2]byte{enc[0], enc[1]})
		assert.Equal(t, tc.row*80+tc.col, got)
	}
}

func TestRawAttrWritableField(t *testing.T) {
	assert.Equal(t, byte(0x00), rawAttr(Field{Write: true}))
}

func TestRawAttrProtectedField(t *testing.T) {
	assert.Equal(t, byte(0x20), rawAttr(Field{}))
}

func TestRawAttrAutoskip(t *testing.T) {
	// Autoskip implies protected+numeric even if Write is set.
	assert.Equal(t, byte(0x30), rawAttr(Field{Write: true, Autoskip: true}))
}

func TestRawAttrNumericOnly(t *testing.T) {
	assert.Equal(t, byte(0x10), rawAttr(Field{Write: true, NumericOnly: true}))
}

func TestRawAttrHiddenTakesPrecedenceOverIntense(t *testing.T) {
	assert.Equal(t, byte(0x0C), rawAttr(Field{Write: true, Hidden: true, Intense: true}))
}

func TestRawAttrIntense(t *testing.T) {
	assert.Equal(t, byte(0x04), rawAttr(Field{Write: true, Intense: true}))
}

func TestExtendedReportsColorOrHighlight(t *testing.T) {
	assert.False(t, extended(Field{}))
	assert.True(t, extended(Field{Color: Red}))
	assert.True(t, extended(Field{Highlighting: Blink}))
}

func TestAIDtoString(t *testing.T) {
	assert.Equal(t, "Enter", AIDtoString(AIDEnter))
	assert.Equal(t, "PF3", AIDtoString(AIDPF3))
	assert.Equal(t, "Clear", AIDtoString(AIDClear))
	assert.Equal(t, "[none]", AIDtoString(AIDNone))
	assert.Equal(t, "[unknown]", AIDtoString(AID(0xff)))
}

func TestModelFromDeviceType(t *testing.T) {
	assert.Equal(t, 2, modelFromDeviceType("IBM-3278-2"))
	assert.Equal(t, 3, modelFromDeviceType("IBM-3278-3-E"))
	assert.Equal(t, 4, modelFromDeviceType("IBM-3279-4-E"))
	assert.Equal(t, 5, modelFromDeviceType("IBM-3279-5-E"))
	assert.Equal(t, 2, modelFromDeviceType("unrecognized"))
}

func TestAidInArray(t *testing.T) {
	keys := []AID{AIDPF1, AIDPF3, AIDEnter}
	assert.True(t, aidInArray(AIDPF3, keys))
	assert.False(t, aidInArray(AIDPF24, keys))
}

func TestMergeFieldValuesPrefersCurrentThenFillsFromOriginal(t *testing.T) {
	original := map[string]string{"a": "orig-a", "b": "orig-b"}
	current := map[string]string{"a": "new-a"}
	merged := mergeFieldValues(original, current)
	assert.Equal(t, "new-a", merged["a"])
	assert.Equal(t, "orig-b", merged["b"])
}

func TestWriteScreenProducesEraseWriteWithFieldsAndEOR(t *testing.T) {
	scr := Screen{
		{Row: 0, Col: 0, Content: "HELLO", Write: true, Name: "greeting"},
	}
	var buf bytes.Buffer
	err := WriteScreen(scr, 0, 6, &buf)
	assert.NoError(t, err)

	data := buf.Bytes()
	assert.Equal(t, byte(0xF5), data[0], "Erase/Write order")
	assert.Equal(t, byte(0xC3), data[1], "WCC")
	assert.Equal(t, byte(0x11), data[2], "SBA order introducing the field")
	assert.Equal(t, byte(0xff), data[len(data)-2], "trailing IAC")
	assert.Equal(t, byte(0xef), data[len(data)-1], "trailing EOR")
}

func TestWriteScreenSkipsFieldsOutsideColumnRange(t *testing.T) {
	scr := Screen{
		{Row: 0, Col: 200, Content: "offscreen"},
	}
	var buf bytes.Buffer
	err := WriteScreen(scr, 0, 0, &buf)
	assert.NoError(t, err)

	// header(2) + cursor SBA(3) + IC(1) + IAC EOR(2): the out-of-range
	// field contributed nothing.
	assert.Equal(t, 8, buf.Len())
}
