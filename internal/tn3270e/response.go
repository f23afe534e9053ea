package tn3270e

// ResponseTracker acknowledges TN3270E records whose request-flag
// demands it, once the RESPONSES function is active (spec §4.2
// "Response handling").
type ResponseTracker struct {
	seq uint16
}

// NextSeq returns the next outbound sequence number, incrementing the
// counter (spec §3 "a monotonic sequence counter for TN3270E requests
// expecting responses").
func (t *ResponseTracker) NextSeq() uint16 {
	t.seq++
	return t.seq
}

// NeedsAck reports whether an inbound header's request-flag demands a
// RESPONSE record, given whether RESPONSES was negotiated and whether
// processing the record produced an error.
func NeedsAck(responsesActive bool, h Header, recordErr error) bool {
	if !responsesActive {
		return false
	}
	switch h.RequestFlag {
	case RequestAlways:
		return true
	case RequestErrorOnly:
		return recordErr != nil
	default:
		return false
	}
}

// BuildAck constructs the RESPONSE record (header + empty payload)
// acknowledging h with a positive or negative result.
func BuildAck(h Header, positive bool, seq uint16) []byte {
	flag := ResponsePositive
	if !positive {
		flag = ResponseNegative
	}
	ack := Header{
		DataType:     DataTypeResponse,
		RequestFlag:  RequestNone,
		ResponseFlag: flag,
		Seq:          seq,
	}
	enc := ack.Encode()
	return enc[:]
}
