package stream

import "github.com/bcrandall/tn3270e/internal/addressing"

// AID byte values that shape a Read Modified reply specially (spec
// §4.5). Duplicated here from the teacher's response.go AID table
// (the full AID enumeration lives in the root package's aid.go; the
// writer only needs to recognize these three shapes).
const (
	aidClear AID = 0x6D
	aidPA1   AID = 0x6C
	aidPA2   AID = 0x6E
	aidPA3   AID = 0x6B
	aidSysReq AID = 0xF0
)

// AID is a local alias so writer.go reads naturally; it is
// byte-compatible with the root package's AID type.
type AID = byte

func isPAKey(aid AID) bool {
	return aid == aidPA1 || aid == aidPA2 || aid == aidPA3
}

// WriteReadBuffer builds a Read Buffer reply: AID + cursor + the
// entire buffer as-is (spec §4.5).
func WriteReadBuffer(scr screenReader, aid AID, mode addressing.Mode) []byte {
	out := []byte{aid}
	addr := addressing.Encode(scr.Cursor(), mode)
	out = append(out, addr[0], addr[1])
	out = append(out, scr.ReadBuffer(mode)...)
	return out
}

// WriteReadModified builds a Read Modified reply. Clear produces AID
// only; Sysreq produces AID only; a PA key produces AID+cursor only;
// otherwise AID + cursor + modified-field data, after which MDT is
// cleared on every field (spec §4.5).
func WriteReadModified(scr screenResetter, aid AID, mode addressing.Mode) []byte {
	if aid == aidClear || aid == aidSysReq {
		return []byte{aid}
	}
	out := []byte{aid}
	addr := addressing.Encode(scr.Cursor(), mode)
	out = append(out, addr[0], addr[1])
	if isPAKey(aid) {
		return out
	}
	out = append(out, scr.ReadModified(mode)...)
	scr.ResetMDT()
	return out
}

// WriteReadModifiedAll builds a Read Modified All reply: every field
// is included regardless of MDT (spec §4.5), with the same
// Clear/Sysreq/PA-key AID short-circuits as Read Modified.
func WriteReadModifiedAll(scr screenAllResetter, aid AID, mode addressing.Mode) []byte {
	if aid == aidClear || aid == aidSysReq {
		return []byte{aid}
	}
	out := []byte{aid}
	addr := addressing.Encode(scr.Cursor(), mode)
	out = append(out, addr[0], addr[1])
	if isPAKey(aid) {
		return out
	}
	out = append(out, scr.ReadModifiedAll(mode)...)
	scr.ResetMDT()
	return out
}

// screenReader is the subset of *screen.Screen the writer needs to
// build a Read Buffer reply.
type screenReader interface {
	Cursor() int
	ReadBuffer(addressing.Mode) []byte
}

// screenResetter additionally allows clearing MDT after Read
// Modified, per spec §4.5.
type screenResetter interface {
	screenReader
	ReadModified(addressing.Mode) []byte
	ResetMDT()
}

// screenAllResetter is screenResetter plus Read Modified All access.
type screenAllResetter interface {
	screenReader
	ReadModifiedAll(addressing.Mode) []byte
	ResetMDT()
}
