package host

import tn3270e "github.com/bcrandall/tn3270e"

// AID is a type alias for the root package's AID, kept under the host
// package too since every pre-existing host application refers to
// host.AID and the host.AIDxxx constants.
type AID = tn3270e.AID

const (
	AIDNone  = tn3270e.AIDNone
	AIDEnter = tn3270e.AIDEnter
	AIDPF1   = tn3270e.AIDPF1
	AIDPF2   = tn3270e.AIDPF2
	AIDPF3   = tn3270e.AIDPF3
	AIDPF4   = tn3270e.AIDPF4
	AIDPF5   = tn3270e.AIDPF5
	AIDPF6   = tn3270e.AIDPF6
	AIDPF7   = tn3270e.AIDPF7
	AIDPF8   = tn3270e.AIDPF8
	AIDPF9   = tn3270e.AIDPF9
	AIDPF10  = tn3270e.AIDPF10
	AIDPF11  = tn3270e.AIDPF11
	AIDPF12  = tn3270e.AIDPF12
	AIDPF13  = tn3270e.AIDPF13
	AIDPF14  = tn3270e.AIDPF14
	AIDPF15  = tn3270e.AIDPF15
	AIDPF16  = tn3270e.AIDPF16
	AIDPF17  = tn3270e.AIDPF17
	AIDPF18  = tn3270e.AIDPF18
	AIDPF19  = tn3270e.AIDPF19
	AIDPF20  = tn3270e.AIDPF20
	AIDPF21  = tn3270e.AIDPF21
	AIDPF22  = tn3270e.AIDPF22
	AIDPF23  = tn3270e.AIDPF23
	AIDPF24  = tn3270e.AIDPF24
	AIDPA1   = tn3270e.AIDPA1
	AIDPA2   = tn3270e.AIDPA2
	AIDPA3   = tn3270e.AIDPA3
	AIDClear = tn3270e.AIDClear
)
