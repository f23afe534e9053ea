// Package stream implements the 3270 data-stream parser and writer:
// commands, Write Control Character bits, orders, buffer addressing,
// extended attributes, and structured fields (spec §4.3, §4.5, §4.6).
package stream

// Command is a decoded 3270 command byte.
type Command int

const (
	CmdUnknown Command = iota
	CmdWrite
	CmdEraseWrite
	CmdEraseWriteAlternate
	CmdReadBuffer
	CmdReadModified
	CmdReadModifiedAll
	CmdEraseAllUnprotected
	CmdWriteStructuredField
)

// commandBytes maps every wire byte value (both the "new" F1-style and
// "old" single-digit code sets defined by IBM GA23-0059) to its
// decoded command.
var commandBytes = map[byte]Command{
	0xF1: CmdWrite, 0x01: CmdWrite,
	0xF5: CmdEraseWrite, 0x05: CmdEraseWrite,
	0x7E: CmdEraseWriteAlternate, 0x0D: CmdEraseWriteAlternate,
	0xF2: CmdReadBuffer, 0x02: CmdReadBuffer,
	0xF6: CmdReadModified, 0x06: CmdReadModified,
	0x6E: CmdReadModifiedAll,
	0x6F: CmdEraseAllUnprotected,
	0xF3: CmdWriteStructuredField, 0x11: CmdWriteStructuredField,
}

// DecodeCommand identifies the command a record's first byte selects.
func DecodeCommand(b byte) Command {
	if c, ok := commandBytes[b]; ok {
		return c
	}
	return CmdUnknown
}

// Write Control Character bits, the flag byte following W/EW/EWA.
const (
	WCCResetPartition  byte = 0x40
	WCCStartPrinter    byte = 0x08
	WCCSoundAlarm      byte = 0x04
	WCCKeyboardRestore byte = 0x02
	WCCResetMDT        byte = 0x01
)

// Order introducer bytes (spec §4.3).
const (
	OrderSF  byte = 0x1D
	OrderSFE byte = 0x29
	OrderSBA byte = 0x11
	OrderSA  byte = 0x28
	OrderMF  byte = 0x2C
	OrderIC  byte = 0x13
	OrderPT  byte = 0x05
	OrderRA  byte = 0x3C
	OrderEUA byte = 0x12
	OrderGE  byte = 0x08
)

// isOrder reports whether b introduces an order rather than being a
// plain EBCDIC data byte.
func isOrder(b byte) bool {
	switch b {
	case OrderSF, OrderSFE, OrderSBA, OrderSA, OrderMF, OrderIC, OrderPT, OrderRA, OrderEUA, OrderGE:
		return true
	}
	return false
}

// Query Reply structured-field IDs that ReadPartitionQuery must
// answer with at minimum (spec §6).
const (
	QRSummary           byte = 0x80
	QRUsableArea        byte = 0x81
	QRCharacterSets     byte = 0x85
	QRColor             byte = 0x86
	QRHighlighting      byte = 0x87
	QRReplyModes        byte = 0x88
	QRImplicitPartition byte = 0xA6
)

// Structured-field IDs recognized inside a Write Structured Field
// record (spec §4.3).
const (
	SFReadPartition     byte = 0x01
	SFEraseReset        byte = 0x03
	SFSetReplyMode      byte = 0x09
	SFActivatePartition byte = 0x0A
	SFOutbound3270DS    byte = 0x40
)

// Read Partition Query sub-types.
const (
	RPQuery     byte = 0x02
	RPQueryList byte = 0x03
)
