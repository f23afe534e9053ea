package stream

import (
	"testing"

	"github.com/bcrandall/tn3270e/internal/addressing"
	"github.com/bcrandall/tn3270e/internal/codepage"
	"github.com/bcrandall/tn3270e/internal/screen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReadModifiedClearAIDIsJustAID(t *testing.T) {
	scr := screen.New(24, 80, codepage.CP037)
	out := WriteReadModified(scr, aidClear, addressing.Mode12)
	assert.Equal(t, []byte{aidClear}, out)
}

func TestWriteReadModifiedPAKeyIsAIDPlusCursor(t *testing.T) {
	scr := screen.New(24, 80, codepage.CP037)
	scr.SetCursor(5)
	out := WriteReadModified(scr, aidPA1, addressing.Mode12)
	addr := addressing.Encode12(5)
	assert.Equal(t, []byte{aidPA1, addr[0], addr[1]}, out)
}

func TestWriteReadModifiedClearsMDTAfterReply(t *testing.T) {
	p := NewParser(screen.New(24, 80, codepage.CP037), codepage.CP037)
	_, err := p.ParseRecord([]byte{0xF5, 0xC3, OrderSF, 0x00, 0xC1})
	require.NoError(t, err)
	p.Screen.SetCursor(2)
	p.Screen.Modify(p.Screen.FindOwner(0))

	_ = WriteReadModified(p.Screen, 0x7D, addressing.Mode12)
	assert.False(t, p.Screen.FindOwner(0).MDT)
}

func TestWriteReadBufferIncludesAIDAndCursor(t *testing.T) {
	scr := screen.New(24, 80, codepage.CP037)
	scr.WriteCell(0, 0xC1, false, screen.ExtendedAttr{})
	scr.SetCursor(1)

	out := WriteReadBuffer(scr, 0x7D, addressing.Mode12)
	addr := addressing.Encode12(1)
	assert.Equal(t, byte(0x7D), out[0])
	assert.Equal(t, addr[0], out[1])
	assert.Equal(t, addr[1], out[2])
	assert.Equal(t, byte(0xC1), out[3])
}

func TestQueryReplyIncludesRequiredIDs(t *testing.T) {
	p := NewParser(screen.New(24, 80, codepage.CP037), codepage.CP037)
	out := p.QueryReply()

	for _, id := range []byte{QRSummary, QRUsableArea, QRCharacterSets, QRColor, QRHighlighting, QRReplyModes, QRImplicitPartition} {
		assert.Contains(t, out, id, "expected Query Reply to contain ID 0x%02x", id)
	}
}
