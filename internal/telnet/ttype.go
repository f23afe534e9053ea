package telnet

// Terminal-type subnegotiation sub-commands (RFC 1091).
const (
	TTypeIs   byte = 0
	TTypeSend byte = 1
)

// DefaultDeviceType is offered in response to SEND when no TN3270E
// negotiation has elected a specific model (spec §4.1).
const DefaultDeviceType = "IBM-3278-2"

// RespondTerminalType answers an IAC SB TTYPE SEND IAC SE with IAC SB
// TTYPE IS <name> IAC SE.
func (f *Framer) RespondTerminalType(name string) error {
	payload := append([]byte{TTypeIs}, []byte(name)...)
	return f.WriteSubnegotiation(OptTType, payload)
}

// RequestTerminalType sends IAC SB TTYPE SEND IAC SE.
func (f *Framer) RequestTerminalType() error {
	return f.WriteSubnegotiation(OptTType, []byte{TTypeSend})
}
