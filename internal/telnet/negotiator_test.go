package telnet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModeStaysNVTUntilBinaryEOREndTTypeAgreed(t *testing.T) {
	var sent [][2]byte
	n := NewNegotiator(func(cmd, opt byte) { sent = append(sent, [2]byte{cmd, opt}) })

	n.RequestUs(OptBinary)
	n.RequestHim(OptBinary)
	assert.Equal(t, ModeNVT, n.Mode())

	n.RecvDo(OptBinary)  // peer agrees we may go binary
	n.RecvWill(OptBinary) // peer agrees to go binary themselves
	assert.Equal(t, ModeNVT, n.Mode(), "EOR and TTYPE still outstanding")
}

func TestModeBecomesBasicThenTN3270EAfterBind(t *testing.T) {
	n := NewNegotiator(func(cmd, opt byte) {})

	for _, opt := range []byte{OptBinary, OptEOR, OptTType} {
		n.RequestUs(opt)
		n.RequestHim(opt)
		n.RecvDo(opt)
		n.RecvWill(opt)
	}
	require.Equal(t, ModeTN3270Basic, n.Mode())

	n.RequestUs(OptTN3270E)
	n.RequestHim(OptTN3270E)
	n.RecvDo(OptTN3270E)
	n.RecvWill(OptTN3270E)
	assert.Equal(t, ModeTN3270Basic, n.Mode(), "TN3270E option agreed but handshake not yet bound")

	n.BindTN3270E()
	assert.Equal(t, ModeTN3270E, n.Mode())
}

func TestDowngradeOnWontReturnsToLowerMode(t *testing.T) {
	n := NewNegotiator(func(cmd, opt byte) {})
	for _, opt := range []byte{OptBinary, OptEOR, OptTType} {
		n.RequestUs(opt)
		n.RequestHim(opt)
		n.RecvDo(opt)
		n.RecvWill(opt)
	}
	require.Equal(t, ModeTN3270Basic, n.Mode())

	n.RecvWont(OptEOR)
	assert.Equal(t, ModeNVT, n.Mode())
}
