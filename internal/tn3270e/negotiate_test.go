package tn3270e

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandshakeConvergesInOneRoundTrip(t *testing.T) {
	var sent [][]byte
	n := NewNegotiation(func(p []byte) { sent = append(sent, p) }, FunctionResponses|FunctionSysReq)
	n.Begin()
	require.Len(t, sent, 1)
	assert.Equal(t, []byte{SubDeviceType, SubSend}, sent[0])

	err := n.HandleSubnegotiation(append([]byte{SubDeviceType, SubIs}, []byte("IBM-3278-2-E")...))
	require.NoError(t, err)
	assert.Equal(t, "IBM-3278-2-E", n.DeviceType)
	require.Len(t, sent, 2)
	assert.Equal(t, byte(FunctionResponses|FunctionSysReq), sent[1][2])

	err = n.HandleSubnegotiation([]byte{SubFunctions, SubIs, byte(FunctionResponses | FunctionSysReq)})
	require.NoError(t, err)
	assert.True(t, n.Bound())
	assert.Equal(t, Functions(FunctionResponses|FunctionSysReq), n.Functions)
}

func TestHandshakeConvergesInSecondRoundTrip(t *testing.T) {
	var sent [][]byte
	n := NewNegotiation(func(p []byte) { sent = append(sent, p) }, FunctionResponses|FunctionSysReq|FunctionBindImage)
	n.Begin()
	_ = n.HandleSubnegotiation(append([]byte{SubDeviceType, SubIs}, []byte("IBM-3279-2-E")...))

	// server only supports a subset
	err := n.HandleSubnegotiation([]byte{SubFunctions, SubIs, byte(FunctionResponses)})
	require.NoError(t, err)
	assert.False(t, n.Bound())

	// second round trip: we re-request the intersection, server confirms
	err = n.HandleSubnegotiation([]byte{SubFunctions, SubIs, byte(FunctionResponses)})
	require.NoError(t, err)
	assert.True(t, n.Bound())
	assert.Equal(t, Functions(FunctionResponses), n.Functions)
}

func TestDeviceTypeRejectionFails(t *testing.T) {
	n := NewNegotiation(func(p []byte) {}, FunctionResponses)
	n.Begin()
	err := n.HandleSubnegotiation([]byte{SubDeviceType, SubReject, ReasonInvDeviceType})
	assert.Error(t, err)
	failed, reason := n.Failed()
	assert.True(t, failed)
	assert.NotEmpty(t, reason)
}

func TestUnsupportedDeviceTypeFails(t *testing.T) {
	n := NewNegotiation(func(p []byte) {}, FunctionResponses)
	n.Begin()
	err := n.HandleSubnegotiation(append([]byte{SubDeviceType, SubIs}, []byte("VT100")...))
	assert.Error(t, err)
	failed, _ := n.Failed()
	assert.True(t, failed)
}

func TestPrinterLUDetection(t *testing.T) {
	n := NewNegotiation(func(p []byte) {}, FunctionResponses)
	n.Begin()
	body := append([]byte{SubDeviceType, SubIs}, []byte("IBM-3278-2-E")...)
	body = append(body, SubConnect)
	body = append(body, []byte("LUPRT01")...)
	err := n.HandleSubnegotiation(body)
	require.NoError(t, err)
	assert.True(t, n.IsPrinterLU)
	assert.Equal(t, "LUPRT01", n.LUName)
}

func TestHeaderEncodeDecodeRoundTrip(t *testing.T) {
	h := Header{DataType: DataType3270, RequestFlag: RequestAlways, ResponseFlag: ResponsePositive, Seq: 0x1234}
	enc := h.Encode()
	got, rest, err := DecodeHeader(append(enc[:], 0xC1, 0xC2))
	require.NoError(t, err)
	assert.Equal(t, h, got)
	assert.Equal(t, []byte{0xC1, 0xC2}, rest)
}

func TestNeedsAck(t *testing.T) {
	h := Header{RequestFlag: RequestAlways}
	assert.True(t, NeedsAck(true, h, nil))
	assert.False(t, NeedsAck(false, h, nil))

	h2 := Header{RequestFlag: RequestErrorOnly}
	assert.False(t, NeedsAck(true, h2, nil))
	assert.True(t, NeedsAck(true, h2, assertError()))
}

func assertError() error { return assertErr{} }

type assertErr struct{}

func (assertErr) Error() string { return "boom" }
