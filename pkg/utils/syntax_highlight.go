// Package utils provides utility functions for the ocho86 project.
package utils

import (
	"regexp"
	"strings"

	"github.com/fatih/color"
)

// NASM syntax highlighting colors
var (
	// Instruction mnemonics
	asmMnemonicColor = color.New(color.FgYellow, color.Bold)
	// Registers
	asmRegisterColor = color.New(color.FgGreen)
	// Numbers (immediates, displacements, addresses)
	asmNumberColor = color.New(color.FgCyan)
	// byte/word size qualifiers
	asmQualifierColor = color.New(color.FgMagenta)
	// Assembler directives (the bits header)
	asmDirectiveColor = color.New(color.FgBlue)
)

// Patterns for syntax elements
var (
	// Matches assembler directives at the start of a line
	asmDirectivePattern = regexp.MustCompile(`^\s*bits\s+[0-9]+`)
	// Matches the instruction mnemonic at the start of a line
	asmMnemonicPattern = regexp.MustCompile(`^[a-z]+`)
	// Matches byte and word registers
	asmRegisterPattern = regexp.MustCompile(`\b(a[lxh]|b[lxh]|c[lxh]|d[lxh]|sp|bp|si|di)\b`)
	// Matches byte/word size qualifiers
	asmQualifierPattern = regexp.MustCompile(`\b(byte|word)\b`)
	// Matches decimal numbers
	asmNumberPattern = regexp.MustCompile(`\b[0-9]+\b`)
)

// token represents a syntax-highlighted token
type token struct {
	text  string
	color *color.Color
	start int
	end   int
}

// HighlightAsmLine applies syntax highlighting to one line of NASM assembly
// and returns the colored string
func HighlightAsmLine(line string) string {
	if line == "" {
		return ""
	}

	var tokens []token

	appendMatches := func(pattern *regexp.Regexp, c *color.Color) {
		for _, match := range pattern.FindAllStringIndex(line, -1) {
			if !overlapsAny(match[0], match[1], tokens) {
				tokens = append(tokens, token{
					text:  line[match[0]:match[1]],
					color: c,
					start: match[0],
					end:   match[1],
				})
			}
		}
	}

	// Directives first: a "bits 16" header line must not have its number or
	// the directive word re-highlighted by later passes
	appendMatches(asmDirectivePattern, asmDirectiveColor)
	appendMatches(asmMnemonicPattern, asmMnemonicColor)
	appendMatches(asmQualifierPattern, asmQualifierColor)
	appendMatches(asmRegisterPattern, asmRegisterColor)
	appendMatches(asmNumberPattern, asmNumberColor)

	return buildHighlightedString(line, tokens)
}

// HighlightAsmListing applies syntax highlighting to a whole NASM listing,
// line by line
func HighlightAsmListing(listing string) string {
	lines := strings.Split(listing, "\n")

	return FormatSlice(Map(lines, HighlightAsmLine), "\n")
}

// overlapsAny checks if a range overlaps with any existing token
func overlapsAny(start, end int, tokens []token) bool {
	for _, t := range tokens {
		if start < t.end && end > t.start {
			return true
		}
	}
	return false
}

// buildHighlightedString constructs the final string with color codes
func buildHighlightedString(line string, tokens []token) string {
	if len(tokens) == 0 {
		return line
	}

	sortTokens(tokens)

	var result strings.Builder
	pos := 0

	for _, t := range tokens {
		if t.start > pos {
			result.WriteString(line[pos:t.start])
		}
		result.WriteString(t.color.Sprint(t.text))
		pos = t.end
	}

	if pos < len(line) {
		result.WriteString(line[pos:])
	}

	return result.String()
}

// sortTokens sorts tokens by start position (simple insertion sort for small arrays)
func sortTokens(tokens []token) {
	for i := 1; i < len(tokens); i++ {
		key := tokens[i]
		j := i - 1
		for j >= 0 && tokens[j].start > key.start {
			tokens[j+1] = tokens[j]
			j--
		}
		tokens[j+1] = key
	}
}
