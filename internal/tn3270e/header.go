// Package tn3270e implements the TN3270E extension: the
// DEVICE-TYPE/FUNCTIONS subnegotiation handshake, the 5-byte record
// header, and RESPONSES acknowledgement handling (RFC 2355, spec
// §4.2).
package tn3270e

import "fmt"

// DataType is the TN3270E record header's first byte.
type DataType byte

const (
	DataType3270    DataType = 0
	DataTypeSCS     DataType = 1
	DataTypeResponse DataType = 2
	DataTypeBindImage DataType = 3
	DataTypeUnbind   DataType = 4
	DataTypeNVT      DataType = 5
	DataTypeRequest  DataType = 6
	DataTypeSSCPLU   DataType = 7
	DataTypePrintEOJ DataType = 8
)

// RequestFlag is the header's request-flag byte: what kind of
// acknowledgement the sender wants for this record.
type RequestFlag byte

const (
	RequestNone      RequestFlag = 0x00
	RequestErrorOnly RequestFlag = 0x01
	RequestAlways    RequestFlag = 0x02
)

// ResponseFlag is the header's response-flag byte, meaningful only on
// DataTypeResponse records.
type ResponseFlag byte

const (
	ResponsePositive ResponseFlag = 0x00
	ResponseNegative ResponseFlag = 0x01
)

// Header is the 5-byte TN3270E record header (spec §4.2).
type Header struct {
	DataType     DataType
	RequestFlag  RequestFlag
	ResponseFlag ResponseFlag
	Seq          uint16
}

// HeaderLen is the wire size of a TN3270E header.
const HeaderLen = 5

// Encode serializes h to its 5-byte wire form.
func (h Header) Encode() [HeaderLen]byte {
	return [HeaderLen]byte{
		byte(h.DataType),
		byte(h.RequestFlag),
		byte(h.ResponseFlag),
		byte(h.Seq >> 8),
		byte(h.Seq),
	}
}

// DecodeHeader strips and parses the 5-byte header from the front of
// an inbound TN3270E record, returning the header and the remaining
// payload.
func DecodeHeader(rec []byte) (Header, []byte, error) {
	if len(rec) < HeaderLen {
		return Header{}, nil, fmt.Errorf("tn3270e: record shorter than header (%d bytes)", len(rec))
	}
	h := Header{
		DataType:     DataType(rec[0]),
		RequestFlag:  RequestFlag(rec[1]),
		ResponseFlag: ResponseFlag(rec[2]),
		Seq:          uint16(rec[3])<<8 | uint16(rec[4]),
	}
	return h, rec[HeaderLen:], nil
}
