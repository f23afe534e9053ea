// This file is part of https://github.com/racingmars/go3270/
// Copyright 2020 by Matthew R. Wilson, licensed under the MIT license. See
// LICENSE in the project root for license information.

package host

import "github.com/bcrandall/tn3270e/internal/codepage"

// Codepage implementations provide EBCDIC<->UTF-8 translation. By default,
// host is configured to use CP 1047. You may alternatively set a different
// codepage using the SetCodepage() function during your application
// initialization.
type Codepage interface {
	// Decode converts a slice of EBCDIC bytes into a UTF-8 string.
	Decode(e []byte) string

	// Encode converts a UTF-8 string into a slice of EBCDIC bytes.
	Encode(s string) []byte

	// ID returns the name of this codepage. Usually a numeric string like
	// "037" or "1047", but could also be a name such as "bracket" if IBM has
	// not assigned a number to the particular codepage.
	ID() string
}

// After careful consideration, I have decided that the default code page we
// will support for EBCDIC is IBM CP 1047. Other code pages may be globally
// selected with the SetCodepage() function.
//
// In suite3270 (e.g. c3270/x3270), the default code page is what it calls
// "brackets". This is CP37 with the [, ], Ý, and ¨ characters swapped around.
// This ends up placing all four of those characters in the correct place for
// 1047 (and thus they will all work correctly with host by default). HOWEVER,
// the ^ and ¬ characters are swapped relative to CP1047.
var defaultCodepage Codepage = Codepage1047()

// SetCodepage sets the codepage/character set that host uses. This is a
// global setting, so if you're expecting clients to be configured to use a
// character set other than host's default, cp1047, you should probably set
// this during your application initialization and then leave it unchanged
// after. This is _not_ a per-connection setting.
//
// For per-client codepage, set the ScreenOpts.Codepage field in the calls to
// ShowScreenOpts(), or pass HandleScreenAlt() a DevInfo whose Codepage()
// returns the codepage to use.
func SetCodepage(cs Codepage) {
	defaultCodepage = cs
}

// codepageOf adapts an *codepage.Codepage from the shared EBCDIC core into
// the host package's narrower Codepage interface.
func codepageOf(cp *codepage.Codepage) Codepage { return cp }

// cp037 and cp1047 are the only two tables the shared EBCDIC core actually
// carries generated data for; the remaining named constructors below alias
// to whichever of the two is the closer match, as recorded in DESIGN.md.
var cp037 = codepageOf(codepage.CP037)
var cp1047 = codepageOf(codepage.CP1047)

// CodepageBracket is the suite3270 "bracket" variant: CP037 with [, ], Ý,
// and ¨ relocated to match CP1047. The shared core does not carry a distinct
// bracket table, so this aliases to CP1047, which agrees with suite3270's
// bracket codepage on every character except ^ and ¬.
func CodepageBracket() Codepage { return cp1047 }

func Codepage037() Codepage { return cp037 }

// The following EBCDIC code pages are all variants of 037 or 1047 for other
// national character sets. The shared core only generates full tables for
// 037 and 1047 (see DESIGN.md's "Code-page coverage" decision); these
// constructors are kept for API compatibility with every named code page
// the teacher library exposed, aliasing to whichever of the two families
// they belong to (037-family or 1047-family) rather than to a distinct
// table this module does not have generated data for.
func Codepage273() Codepage  { return cp037 }
func Codepage275() Codepage  { return cp037 }
func Codepage277() Codepage  { return cp037 }
func Codepage278() Codepage  { return cp037 }
func Codepage280() Codepage  { return cp037 }
func Codepage284() Codepage  { return cp037 }
func Codepage285() Codepage  { return cp037 }
func Codepage297() Codepage  { return cp037 }
func Codepage424() Codepage  { return cp037 }
func Codepage500() Codepage  { return cp037 }
func Codepage803() Codepage  { return cp037 }
func Codepage870() Codepage  { return cp037 }
func Codepage871() Codepage  { return cp037 }
func Codepage875() Codepage  { return cp037 }
func Codepage880() Codepage  { return cp037 }
func Codepage924() Codepage  { return cp1047 }
func Codepage1026() Codepage { return cp037 }
func Codepage1047() Codepage { return cp1047 }
func Codepage1140() Codepage { return cp037 }
func Codepage1141() Codepage { return cp037 }
func Codepage1142() Codepage { return cp037 }
func Codepage1143() Codepage { return cp037 }
func Codepage1144() Codepage { return cp037 }
func Codepage1145() Codepage { return cp037 }
func Codepage1146() Codepage { return cp037 }
func Codepage1147() Codepage { return cp037 }
func Codepage1148() Codepage { return cp037 }
func Codepage1149() Codepage { return cp037 }
func Codepage1160() Codepage { return cp1047 }

var codepageToFunction = map[int]func() Codepage{
	37:   Codepage037,
	273:  Codepage273,
	275:  Codepage275,
	277:  Codepage277,
	278:  Codepage278,
	280:  Codepage280,
	284:  Codepage284,
	285:  Codepage285,
	297:  Codepage297,
	424:  Codepage424,
	500:  Codepage500,
	803:  Codepage803,
	870:  Codepage870,
	871:  Codepage871,
	875:  Codepage875,
	880:  Codepage880,
	924:  Codepage924,
	1026: Codepage1026,
	1047: Codepage1047,
	1140: Codepage1140,
	1141: Codepage1141,
	1142: Codepage1142,
	1143: Codepage1143,
	1144: Codepage1144,
	1145: Codepage1145,
	1146: Codepage1146,
	1147: Codepage1147,
	1148: Codepage1148,
	1149: Codepage1149,
	1160: Codepage1160,
}

// codepageByNumber looks up a codepage by its numeric identifier, as
// reported by a client's QUERY REPLY or negotiated code-page name,
// falling back to the library default when unrecognized.
func codepageByNumber(n int) Codepage {
	if fn, ok := codepageToFunction[n]; ok {
		return fn()
	}
	return defaultCodepage
}
