package vector

import (
	"errors"
	"math"
	"strconv"
)

// growStep is the number of elements the parse buffer grows by.
const growStep = 64

// parser holds the state of a single text parse.
type parser struct {
	text    []byte
	pos     int
	n       int
	buf     []float32
	dimOnly bool
	maxDim  int
}

// run scans the whole text. Bracket, comma and whitespace characters are
// skipped without any structural validation.
func (p *parser) run() error {
	for p.pos < len(p.text) {
		c := p.text[p.pos]
		if c == 0 {
			break
		}
		if isNoise(c) {
			p.pos++
			continue
		}
		if !isStarter(c) {
			return ErrMalformed
		}
		value, size := scanFloat(p.text[p.pos:])
		if size == 0 {
			return ErrMalformed
		}
		if !p.dimOnly {
			if err := p.push(value); err != nil {
				return err
			}
		}
		p.n++
		p.pos += size
	}
	return nil
}

func (p *parser) push(value float32) error {
	if p.n >= p.maxDim {
		return ErrTooBig
	}
	if p.n >= len(p.buf) {
		grown := make([]float32, len(p.buf)+growStep)
		copy(grown, p.buf)
		p.buf = grown
	}
	p.buf[p.n] = value
	return nil
}

func isNoise(c byte) bool {
	switch c {
	case ' ', '\t', '\v', '\n', '\r', '[', ',', ']':
		return true
	}
	return false
}

func isStarter(c byte) bool {
	switch c {
	case 'N', 'I', '-', '+', '.':
		return true
	}
	return isDigit(c)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isHexDigit(c byte) bool {
	return isDigit(c) || (c|0x20 >= 'a' && c|0x20 <= 'f')
}

// scanFloat converts the longest prefix of s that forms a C floating-point
// literal and returns its value with the number of bytes consumed. A zero
// size means s does not start with a literal.
func scanFloat(s []byte) (float32, int) {
	i := 0
	neg := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}
	if prefixFold(s[i:], "inf") {
		i += 3
		if prefixFold(s[i:], "inity") {
			i += 5
		}
		if neg {
			return float32(math.Inf(-1)), i
		}
		return float32(math.Inf(1)), i
	}
	if prefixFold(s[i:], "nan") {
		i += 3
		return float32(math.NaN()), i + nanPayload(s[i:])
	}
	if i+1 < len(s) && s[i] == '0' && s[i+1]|0x20 == 'x' {
		if value, size, ok := scanHex(s[:i], s[i+2:]); ok {
			return value, i + 2 + size
		}
	}
	return scanDecimal(s, i)
}

func scanDecimal(s []byte, i int) (float32, int) {
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0, 0
	}
	if i < len(s) && s[i]|0x20 == 'e' {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && isDigit(s[j]) {
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			i = j
		}
	}
	value, ok := parseFloat32(string(s[:i]))
	if !ok {
		return 0, 0
	}
	return value, i
}

// scanHex scans a hexadecimal mantissa and optional binary exponent that
// follow the 0x prefix. It reports false when no hex digit follows the
// prefix, in which case the leading 0 is a decimal literal on its own.
func scanHex(sign, s []byte) (float32, int, bool) {
	i, digits := 0, 0
	for i < len(s) && isHexDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isHexDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0, 0, false
	}
	mantissa := s[:i]
	exponent := "p0"
	if i < len(s) && s[i]|0x20 == 'p' {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && isDigit(s[j]) {
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			exponent = string(s[i:j])
			i = j
		}
	}
	value, ok := parseFloat32(string(sign) + "0x" + string(mantissa) + exponent)
	if !ok {
		return 0, 0, false
	}
	return value, i, true
}

// parseFloat32 parses a well-formed literal. Out of range values saturate to
// infinity.
func parseFloat32(lit string) (float32, bool) {
	f, err := strconv.ParseFloat(lit, 32)
	if err != nil {
		var numErr *strconv.NumError
		if !errors.As(err, &numErr) || !errors.Is(numErr.Err, strconv.ErrRange) {
			return 0, false
		}
	}
	return float32(f), true
}

// nanPayload returns the length of an optional "(chars)" suffix of a NaN
// literal, or zero when the suffix is absent or unterminated.
func nanPayload(s []byte) int {
	if len(s) == 0 || s[0] != '(' {
		return 0
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		switch {
		case c == ')':
			return i + 1
		case isDigit(c), c|0x20 >= 'a' && c|0x20 <= 'z', c == '_':
		default:
			return 0
		}
	}
	return 0
}

func prefixFold(s []byte, prefix string) bool {
	if len(s) < len(prefix) {
		return false
	}
	for i := 0; i < len(prefix); i++ {
		if s[i]|0x20 != prefix[i] {
			return false
		}
	}
	return true
}
