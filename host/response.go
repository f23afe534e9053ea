// This file is part of https://github.com/racingmars/go3270/
// Copyright 2020 by Matthew R. Wilson, licensed under the MIT license. See
// LICENSE in the project root for license information.

package host

import (
	"fmt"
	"net"
)

// Response encapsulates data received from a 3270 client in response to the
// previously sent screen.
type Response struct {
	// Which Action ID key did the user press?
	AID AID

	// Row the cursor was on (0-based).
	Row int

	// Column the cursor was on (0-based).
	Col int

	// Field values.
	Values map[string]string
}

// fieldmap associates a writable field's starting buffer address with its
// Field.Name, so a Read Modified reply's per-field data can be routed back
// into a Response.Values map.
type fieldmap map[int]string

// readResponse reads one 3270 record (a Read Modified reply) from conn's
// framer and decodes it into a Response, using cp to decode field content.
func readResponse(c net.Conn, fm fieldmap, cp Codepage) (Response, error) {
	var r Response
	if cp == nil {
		cp = defaultCodepage
	}

	f := framerFor(c)
	rec, err := f.ReadRecord()
	if err != nil {
		return r, fmt.Errorf("host: reading response: %w", err)
	}
	if len(rec) == 0 {
		return r, fmt.Errorf("host: reading response: empty record")
	}

	r.AID = AID(rec[0])
	rec = rec[1:]

	if r.AID == AIDClear || r.AID == AIDPA1 || r.AID == AIDPA2 ||
		r.AID == AIDPA3 {
		return r, nil
	}

	if len(rec) < 2 {
		return r, nil
	}
	addr := decodeBufAddr([2]byte{rec[0], rec[1]})
	r.Col = addr % 80
	r.Row = (addr - r.Col) / 80
	rec = rec[2:]

	r.Values = readFields(rec, fm, cp)
	return r, nil
}

// readFields walks the remainder of a Read Modified reply (repeated
// SBA-then-data field groups) and extracts values for every field present
// in fm.
func readFields(rec []byte, fm fieldmap, cp Codepage) map[string]string {
	values := make(map[string]string)

	i := 0
	for i < len(rec) {
		if rec[i] != 0x11 { // SBA
			i++
			continue
		}
		if i+3 > len(rec) {
			break
		}
		addr := decodeBufAddr([2]byte{rec[i+1], rec[i+2]})
		i += 3

		start := i
		for i < len(rec) && rec[i] != 0x11 {
			i++
		}
		debugf("Field %d: %s\n", addr, cp.Decode(rec[start:i]))
		handleField(addr, rec[start:i], fm, values, cp)
	}

	return values
}

func handleField(addr int, value []byte, fm fieldmap, values map[string]string, cp Codepage) bool {
	name, ok := fm[addr]
	if !ok {
		return false
	}
	values[name] = cp.Decode(value)
	return true
}
