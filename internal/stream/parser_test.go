package stream

import (
	"testing"

	"github.com/bcrandall/tn3270e/internal/addressing"
	"github.com/bcrandall/tn3270e/internal/codepage"
	"github.com/bcrandall/tn3270e/internal/screen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newParser() (*Parser, *screen.Screen) {
	scr := screen.New(24, 80, codepage.CP037)
	return NewParser(scr, codepage.CP037), scr
}

func TestEraseWriteBareData(t *testing.T) {
	p, scr := newParser()
	rec := []byte{0xF5, 0xC3, 0xC1, 0xC2} // EW, WCC=restore+reset-MDT, 'A','B'
	res, err := p.ParseRecord(rec)
	require.NoError(t, err)
	assert.Equal(t, CmdEraseWrite, res.Command)
	assert.Equal(t, byte(0xC1), scr.Cell(0).Code)
	assert.Equal(t, byte(0xC2), scr.Cell(1).Code)
}

func TestEraseWriteWithSBA(t *testing.T) {
	p, scr := newParser()
	addr := addressing.Encode12(10)
	rec := []byte{0xF5, 0xC3, OrderSBA, addr[0], addr[1], 0xC8, 0xC9}
	_, err := p.ParseRecord(rec)
	require.NoError(t, err)
	assert.Equal(t, byte(0xC8), scr.Cell(10).Code)
	assert.Equal(t, byte(0xC9), scr.Cell(11).Code)
}

func TestEraseWriteWithProtectedField(t *testing.T) {
	p, scr := newParser()
	rec := []byte{0xF5, 0xC3, OrderSF, 0xF0, 0xC1}
	_, err := p.ParseRecord(rec)
	require.NoError(t, err)

	f := scr.FindOwner(0)
	assert.True(t, f.Protected())
	assert.Equal(t, byte(0xC1), scr.Cell(1).Code)
}

func TestRepeatToAddressFillsWholeBufferWhenStopEqualsZero(t *testing.T) {
	p, scr := newParser()
	_, err := p.ParseRecord([]byte{0xF5, 0xC3})
	require.NoError(t, err)

	rec := []byte{0xF1, 0x00, OrderRA, 0x00, 0x00, 0x40}
	_, err = p.ParseRecord(rec)
	require.NoError(t, err)

	rows, cols := scr.Size()
	for i := 0; i < rows*cols; i++ {
		assert.Equal(t, byte(0x40), scr.Cell(i).Code)
	}
}

func TestUnknownCommandDiscardsRecord(t *testing.T) {
	p, _ := newParser()
	_, err := p.ParseRecord([]byte{0x99})
	assert.Error(t, err)
}

func TestTruncatedOrderIsRecoverable(t *testing.T) {
	p, scr := newParser()
	rec := []byte{0xF5, 0xC3, 0xC1, OrderSBA, 0x00} // SBA missing second byte
	_, err := p.ParseRecord(rec)
	assert.Error(t, err)
	// The data written before the truncated order is kept.
	assert.Equal(t, byte(0xC1), scr.Cell(0).Code)
}

func TestReadBufferAndReadModifiedReplyKinds(t *testing.T) {
	p, _ := newParser()
	res, err := p.ParseRecord([]byte{0xF2})
	require.NoError(t, err)
	assert.Equal(t, ReplyReadBuffer, res.Reply)

	res, err = p.ParseRecord([]byte{0xF6})
	require.NoError(t, err)
	assert.Equal(t, ReplyReadModified, res.Reply)
}

func TestEraseAllUnprotectedClearsOnlyUnprotectedCells(t *testing.T) {
	p, scr := newParser()
	rec := []byte{0xF5, 0xC3, OrderSF, 0xF0, 0xC1, OrderSF, 0x00, 0xC2}
	_, err := p.ParseRecord(rec)
	require.NoError(t, err)

	_, err = p.ParseRecord([]byte{0x6F})
	require.NoError(t, err)

	assert.Equal(t, byte(0xC1), scr.Cell(1).Code) // protected field untouched
}

func TestGraphicEscapeOrderMarksNextDataByte(t *testing.T) {
	p, scr := newParser()
	rec := []byte{0xF5, 0xC3, OrderGE, 0xC4}
	_, err := p.ParseRecord(rec)
	require.NoError(t, err)
	assert.True(t, scr.Cell(0).GE)
}

func TestKeyboardRestoreWCCUnlocksWithoutErasing(t *testing.T) {
	p, scr := newParser()
	scr.Inhibited = true
	scr.InhibitReason = screen.InhibitProtected

	// Plain Write (not EW/EWA) carrying only the keyboard-restore bit.
	rec := []byte{0xF1, WCCKeyboardRestore, 0xC1}
	_, err := p.ParseRecord(rec)
	require.NoError(t, err)

	assert.False(t, scr.Inhibited)
	assert.Equal(t, screen.NotInhibited, scr.InhibitReason)
	assert.Equal(t, byte(0xC1), scr.Cell(0).Code)
}

func TestPlainWriteWithoutKeyboardRestoreLeavesLockInPlace(t *testing.T) {
	p, scr := newParser()
	scr.Inhibited = true
	scr.InhibitReason = screen.InhibitNumeric

	rec := []byte{0xF1, 0x00, 0xC1}
	_, err := p.ParseRecord(rec)
	require.NoError(t, err)

	assert.True(t, scr.Inhibited)
	assert.Equal(t, screen.InhibitNumeric, scr.InhibitReason)
}
