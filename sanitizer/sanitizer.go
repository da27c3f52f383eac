// FILE: lixenwraith/asynclog/sanitizer/sanitizer.go
// Package sanitizer keeps log fields safe for line-oriented and JSON output.
// Rules pair a bitwise character filter with a transform; the first matching rule wins.
package sanitizer

import (
	"encoding/hex"
	"strconv"
	"unicode"
	"unicode/utf8"
)

// Filter flags for character matching
const (
	FilterNonPrintable uint64 = 1 << iota // Runes not printable per strconv.IsPrint
	FilterControl                         // unicode.IsControl
	FilterWhitespace                      // unicode.IsSpace
	FilterLineBreak                       // '\n' and '\r'
)

// Transform flags for character transformation
const (
	TransformStrip      uint64 = 1 << iota // Drop the rune
	TransformHexEncode                     // Replace with "<xx..>" of its UTF-8 bytes
	TransformJSONEscape                    // Backslash escape as in a JSON string
	TransformSpace                         // Replace with a single space
)

// PolicyPreset names a pre-configured rule set
type PolicyPreset string

const (
	PolicyRaw  PolicyPreset = "raw"  // Passthrough
	PolicyTxt  PolicyPreset = "txt"  // One record per line, non-printables hex encoded
	PolicyJSON PolicyPreset = "json" // Control characters JSON escaped
)

type rule struct {
	filter    uint64
	transform uint64
}

var policyRules = map[PolicyPreset][]rule{
	PolicyRaw:  {},
	PolicyTxt:  {{filter: FilterNonPrintable, transform: TransformHexEncode}},
	PolicyJSON: {{filter: FilterControl, transform: TransformJSONEscape}},
}

// Ordered so matching is deterministic
var filterOrder = []uint64{FilterLineBreak, FilterControl, FilterWhitespace, FilterNonPrintable}

var filterCheckers = map[uint64]func(rune) bool{
	FilterNonPrintable: func(r rune) bool { return !strconv.IsPrint(r) },
	FilterControl:      unicode.IsControl,
	FilterWhitespace:   unicode.IsSpace,
	FilterLineBreak:    func(r rune) bool { return r == '\n' || r == '\r' },
}

// Sanitizer applies an ordered list of rules. It holds no scratch state and is safe for concurrent use once built.
type Sanitizer struct {
	rules []rule
}

// New creates a passthrough sanitizer
func New() *Sanitizer {
	return &Sanitizer{}
}

// Rule appends a custom rule
func (s *Sanitizer) Rule(filter uint64, transform uint64) *Sanitizer {
	s.rules = append(s.rules, rule{filter: filter, transform: transform})
	return s
}

// Policy appends the rules of a preset
func (s *Sanitizer) Policy(preset PolicyPreset) *Sanitizer {
	if rules, ok := policyRules[preset]; ok {
		s.rules = append(s.rules, rules...)
	}
	return s
}

// Sanitize returns data with every rule applied
func (s *Sanitizer) Sanitize(data string) string {
	if s == nil || len(s.rules) == 0 || s.clean(data) {
		return data
	}
	return string(s.Append(make([]byte, 0, len(data)+8), data))
}

// Append sanitizes data onto buf
func (s *Sanitizer) Append(buf []byte, data string) []byte {
	if s == nil || len(s.rules) == 0 {
		return append(buf, data...)
	}
	for _, r := range data {
		matched := false
		for _, rl := range s.rules {
			if matchesFilter(r, rl.filter) {
				buf = applyTransform(buf, r, rl.transform)
				matched = true
				break
			}
		}
		if !matched {
			buf = utf8.AppendRune(buf, r)
		}
	}
	return buf
}

// clean reports whether no rule would touch data
func (s *Sanitizer) clean(data string) bool {
	for _, r := range data {
		for _, rl := range s.rules {
			if matchesFilter(r, rl.filter) {
				return false
			}
		}
	}
	return true
}

func matchesFilter(r rune, filterMask uint64) bool {
	for _, flag := range filterOrder {
		if filterMask&flag != 0 && filterCheckers[flag](r) {
			return true
		}
	}
	return false
}

func applyTransform(buf []byte, r rune, transformMask uint64) []byte {
	switch {
	case transformMask&TransformStrip != 0:
		return buf

	case transformMask&TransformSpace != 0:
		return append(buf, ' ')

	case transformMask&TransformHexEncode != 0:
		var runeBytes [utf8.UTFMax]byte
		n := utf8.EncodeRune(runeBytes[:], r)
		buf = append(buf, '<')
		buf = hex.AppendEncode(buf, runeBytes[:n])
		return append(buf, '>')

	case transformMask&TransformJSONEscape != 0:
		return appendJSONRune(buf, r)
	}
	return utf8.AppendRune(buf, r)
}

// AppendJSONString appends s as a quoted, escaped JSON string
func AppendJSONString(buf []byte, s string) []byte {
	buf = append(buf, '"')
	for i := 0; i < len(s); {
		c := s[i]
		if c >= ' ' && c != '"' && c != '\\' && c < 0x7f {
			start := i
			for i < len(s) && s[i] >= ' ' && s[i] != '"' && s[i] != '\\' && s[i] < 0x7f {
				i++
			}
			buf = append(buf, s[start:i]...)
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			buf = append(buf, `�`...)
		} else {
			buf = appendJSONRune(buf, r)
		}
		i += size
	}
	return append(buf, '"')
}

func appendJSONRune(buf []byte, r rune) []byte {
	switch r {
	case '\\', '"':
		return append(buf, '\\', byte(r))
	case '\n':
		return append(buf, '\\', 'n')
	case '\r':
		return append(buf, '\\', 'r')
	case '\t':
		return append(buf, '\\', 't')
	case '\b':
		return append(buf, '\\', 'b')
	case '\f':
		return append(buf, '\\', 'f')
	}
	if r < 0x20 || r == 0x7f {
		buf = append(buf, `\u00`...)
		return append(buf, hexDigit(byte(r)>>4), hexDigit(byte(r)&0xF))
	}
	return utf8.AppendRune(buf, r)
}

func hexDigit(b byte) byte {
	const digits = "0123456789abcdef"
	return digits[b]
}
