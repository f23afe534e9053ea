// This file is part of https://github.com/racingmars/go3270/
// Copyright 2020 by Matthew R. Wilson, licensed under the MIT license. See
// LICENSE in the project root for license information.

package host

import (
	"fmt"
	"io"
)

// Debug enables host library debugging by setting Debug to an io.Writer.
// Disable debugging by setting it to nil (the default value).
var Debug io.Writer

// debugf will print to the Debug io.Writer if it isn't nil.
func debugf(format string, a ...interface{}) {
	if Debug == nil {
		return
	}

	fmt.Fprintf(Debug, "dbg: ")
	fmt.Fprintf(Debug, format, a...)
}

// AIDtoString returns a string representation of an AID key name.
func AIDtoString(aid AID) string {
	switch aid {
	case AIDClear:
		return "Clear"
	case AIDEnter:
		return "Enter"
	case AIDNone:
		return "[none]"
	case AIDPA1:
		return "PA1"
	case AIDPA2:
		return "PA2"
	case AIDPA3:
		return "PA3"
	case AIDPF1:
		return "PF1"
	case AIDPF2:
		return "PF2"
	case AIDPF3:
		return "PF3"
	case AIDPF4:
		return "PF4"
	case AIDPF5:
		return "PF5"
	case AIDPF6:
		return "PF6"
	case AIDPF7:
		return "PF7"
	case AIDPF8:
		return "PF8"
	case AIDPF9:
		return "PF9"
	case AIDPF10:
		return "PF10"
	case AIDPF11:
		return "PF11"
	case AIDPF12:
		return "PF12"
	case AIDPF13:
		return "PF13"
	case AIDPF14:
		return "PF14"
	case AIDPF15:
		return "PF15"
	case AIDPF16:
		return "PF16"
	case AIDPF17:
		return "PF17"
	case AIDPF18:
		return "PF18"
	case AIDPF19:
		return "PF19"
	case AIDPF20:
		return "PF20"
	case AIDPF21:
		return "PF21"
	case AIDPF22:
		return "PF22"
	case AIDPF23:
		return "PF23"
	case AIDPF24:
		return "PF24"
	default:
		return "[unknown]"
	}
}
