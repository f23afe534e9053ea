// Command generate emits a `var cpNNNE2A = [256]rune{...}` table
// literal for the codepage package from an ICU-data UCM charmap file,
// in the format tables.go expects (a bare EBCDIC->Unicode array rather
// than a full Codepage struct literal -- the struct itself, the
// Graphic Escape table, and the esub/ge bytes are package-level
// constants built once in codepage.go, not regenerated per page).
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

func main() {
	cpName := flag.String("n", "", "Code page name (e.g. 037)")
	cpPath := flag.String("i", "", "Input file path")
	flag.Parse()

	if *cpName == "" || *cpPath == "" {
		fmt.Fprintln(os.Stderr, "-n and -i arguments are required.")
		flag.Usage()
		os.Exit(1)
	}

	u2e, err := read(*cpPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	// Build the reverse map
	e2u := make(map[int]int)
	for k, v := range u2e {
		e2u[v] = k
	}

	fmt.Println("package codepage")
	fmt.Println()
	fmt.Printf("// cp%sE2A is the EBCDIC->Unicode table for code page %s.\n",
		*cpName, *cpName)
	fmt.Printf("//\n// Generated from %s (https://github.com/unicode-org/icu-data).\n",
		filepath.Base(*cpPath))
	fmt.Printf("var cp%sE2A = [256]rune{\n", *cpName)
	fmt.Printf("\t/*         x0    x1    x2    x3    x4    x5    x6    x7    x8    x9    xA    xB    xC    xD    xE    xF */\n")
	fmt.Printf("\t/* 0x */ ")
	line := 0
	pos := -1
	for i := 0; i <= 0xFF; i++ {
		pos++
		if pos >= 16 {
			line++
			pos = 0
			fmt.Printf("\n")
			fmt.Printf("\t/* %Xx */ ", line)
		}
		v, ok := e2u[i]
		if !ok {
			fmt.Printf("0xFFFD, ")
			continue
		}
		fmt.Printf("0x%02X, ", v)
	}
	fmt.Printf("\n}\n")
}

// read reads a UCM file and returns a map of Unicode CPs to EBCDIC
func read(input string) (map[int]int, error) {
	f, err := os.Open(input)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	u2e := make(map[int]int)

	s := bufio.NewScanner(f)

	var incharmap bool
	for s.Scan() {
		line := s.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !incharmap && line != "CHARMAP" {
			continue
		}

		if line == "CHARMAP" {
			incharmap = true
			continue
		}

		// Skip non-roundtrip characters
		if strings.HasSuffix(line, "|1") {
			continue
		}

		if line == "END CHARMAP" {
			break
		}

		codepoint, ebcdic, err := parseUcmLine(line)
		if err != nil {
			panic(err)
		}

		if _, ok := u2e[codepoint]; ok {
			fmt.Fprintf(os.Stderr, "WARNING: duplicate codepoint U%04x\n",
				codepoint)
		}
		u2e[codepoint] = ebcdic
	}

	if err := s.Err(); err != nil {
		panic(err)
	}

	return u2e, nil
}

func parseUcmLine(s string) (int, int, error) {
	// Regex to match <UXXXX> and \xYY patterns
	reU := regexp.MustCompile(`U([0-9A-Fa-f]+)`)
	reX := regexp.MustCompile(`\\x([0-9A-Fa-f]+)`)

	// Find matches
	matchU := reU.FindStringSubmatch(s)
	matchX := reX.FindStringSubmatch(s)

	if matchU == nil || matchX == nil {
		return 0, 0, fmt.Errorf("could not find both hex patterns in input")
	}

	// Convert hex strings to integers
	valU, err := strconv.ParseInt(matchU[1], 16, 64)
	if err != nil {
		return 0, 0, err
	}

	valX, err := strconv.ParseInt(matchX[1], 16, 64)
	if err != nil {
		return 0, 0, err
	}

	return int(valU), int(valX), nil
}
