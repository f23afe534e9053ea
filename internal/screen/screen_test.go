package screen

import (
	"testing"

	"github.com/bcrandall/tn3270e/internal/addressing"
	"github.com/bcrandall/tn3270e/internal/codepage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScreen() *Screen {
	return New(24, 80, codepage.CP037)
}

func TestClearRemovesFieldsAndCursor(t *testing.T) {
	s := newTestScreen()
	s.SetFieldAttr(10, attrProtectedBit)
	s.SetCursor(50)
	s.Clear()

	assert.Equal(t, 0, s.Cursor())
	assert.Same(t, defaultField, s.FindOwner(10))
}

func TestDefaultFieldOwnsEverythingBeforeAnySF(t *testing.T) {
	s := newTestScreen()
	for _, addr := range []int{0, 100, 1919} {
		assert.Same(t, defaultField, s.FindOwner(addr))
	}
	assert.False(t, defaultField.Protected())
}

func TestSetFieldAttrSplicesChainInOrder(t *testing.T) {
	s := newTestScreen()
	s.SetFieldAttr(20, attrProtectedBit)
	s.SetFieldAttr(5, 0)
	s.SetFieldAttr(40, attrProtectedBit)

	require.Len(t, s.fields, 3)
	assert.Equal(t, 5, s.fields[0].Start)
	assert.Equal(t, 20, s.fields[1].Start)
	assert.Equal(t, 40, s.fields[2].Start)
}

func TestFindOwnerWrapsAroundEnd(t *testing.T) {
	s := newTestScreen()
	s.SetFieldAttr(1900, attrProtectedBit) // last field, wraps to cover 0..9
	s.SetFieldAttr(10, 0)

	owner := s.FindOwner(0)
	assert.Equal(t, 1900, owner.Start)
	assert.True(t, owner.Protected())
}

func TestWriteCellOverAttributeRemovesField(t *testing.T) {
	s := newTestScreen()
	s.SetFieldAttr(10, 0)
	require.Len(t, s.fields, 1)

	s.WriteCell(10, 0xC1, false, ExtendedAttr{})
	assert.Len(t, s.fields, 0)
}

func TestTypeRejectsProtectedField(t *testing.T) {
	s := newTestScreen()
	s.SetFieldAttr(0, attrProtectedBit)
	s.SetCursor(1)

	ok := s.Type(0xC1, false)
	assert.False(t, ok)
	assert.True(t, s.Inhibited)
	assert.Equal(t, InhibitProtected, s.InhibitReason)
}

func TestTypeSetsMDTAndAdvancesCursor(t *testing.T) {
	s := newTestScreen()
	s.SetFieldAttr(0, 0)
	s.SetCursor(1)

	ok := s.Type(0xC1, false)
	require.True(t, ok)
	assert.True(t, s.FindOwner(0).MDT)
	assert.Equal(t, 2, s.Cursor())
}

func TestTypeRejectsNonNumericInNumericField(t *testing.T) {
	s := newTestScreen()
	s.SetFieldAttr(0, attrNumericBit)
	s.SetCursor(1)

	ok := s.Type(0xC1, false) // 'A' is not numeric
	assert.False(t, ok)
	assert.Equal(t, InhibitNumeric, s.InhibitReason)
}

func TestRepeatToAddressWrapsWhenStartEqualsStop(t *testing.T) {
	s := newTestScreen()
	s.RepeatToAddress(5, 5, 0x40, false, false)
	for i := 0; i < s.Len(); i++ {
		assert.Equal(t, byte(0x40), s.cells[i].Code)
	}
}

func TestEraseAllUnprotectedClearsMDTAndMovesCursor(t *testing.T) {
	s := newTestScreen()
	s.SetFieldAttr(0, attrProtectedBit)
	s.SetFieldAttr(10, 0)
	s.SetCursor(11)
	s.Type(0xC1, false)
	require.True(t, s.FindOwner(10).MDT)

	s.EraseAllUnprotected()

	assert.False(t, s.FindOwner(10).MDT)
	assert.Equal(t, 11, s.Cursor())
}

func TestReadModifiedEncodesOnlyModifiedFieldsTrimmed(t *testing.T) {
	s := newTestScreen()
	s.SetFieldAttr(0, attrProtectedBit) // unmodified, label field
	s.SetFieldAttr(10, 0)               // unprotected input field
	s.SetCursor(11)
	s.Type(0xC1, false)
	s.Type(0xC2, false)

	out := s.ReadModified(addressing.Mode12)
	addr := addressing.Encode12(11)
	expected := []byte{orderSBA, addr[0], addr[1], 0xC1, 0xC2}
	assert.Equal(t, expected, out)
}

func TestReadBufferEmitsAttributeCellsInline(t *testing.T) {
	s := newTestScreen()
	s.SetFieldAttr(0, attrProtectedBit)
	s.WriteCell(1, 0xC1, false, ExtendedAttr{})

	out := s.ReadBuffer(addressing.Mode12)
	require.GreaterOrEqual(t, len(out), 3)
	assert.Equal(t, orderSF, out[0])
	assert.Equal(t, addressing.Encode6(attrProtectedBit), out[1])
	assert.Equal(t, byte(0xC1), out[2])
}

func TestTabMovesToNextUnprotectedField(t *testing.T) {
	s := newTestScreen()
	s.SetFieldAttr(0, attrProtectedBit)
	s.SetFieldAttr(5, 0)
	s.SetCursor(0)

	s.Tab()
	assert.Equal(t, 6, s.Cursor())
}

func TestBackspaceStopsAtFieldStart(t *testing.T) {
	s := newTestScreen()
	s.SetFieldAttr(0, 0)
	s.SetCursor(1)

	s.Backspace()
	assert.Equal(t, 1, s.Cursor())
}

func TestDeleteShiftsFieldLeft(t *testing.T) {
	s := newTestScreen()
	s.SetFieldAttr(0, 0)
	s.SetCursor(1)
	s.Type(0xC1, false)
	s.Type(0xC2, false)
	s.SetCursor(1)

	s.Delete()
	assert.Equal(t, byte(0xC2), s.cells[1].Code)
	assert.Equal(t, byte(0x00), s.cells[2].Code)
}

func TestSetFieldAttrExtendedStoresBasicAndExtendedAttrs(t *testing.T) {
	s := newTestScreen()
	f := s.SetFieldAttrExtended(0, []TypeValue{
		{Type: XAAllAttributes, Value: attrProtectedBit},
		{Type: XAHighlighting, Value: HighlightReverse},
	})

	assert.True(t, f.Protected())
	assert.Equal(t, HighlightReverse, f.Ext.Highlight)
}
