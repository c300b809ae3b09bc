package vector

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	// DefaultMaxDim caps result vectors at SQLite's default maximum BLOB size.
	DefaultMaxDim = 1_000_000_000 / ElemSize
	// DefaultMaxText caps formatted text at SQLite's default maximum length.
	DefaultMaxText = 1_000_000_000
	// DefaultScanCap bounds the scan of text parsed without an explicit length.
	DefaultScanCap = 0xFFFFF
)

// Codec converts between BLOB, text and scalar representations of a vector.
// The zero value uses the default limits.
type Codec struct {
	// MaxDim is the largest dimension the codec will allocate.
	MaxDim int
	// MaxText is the largest text, in bytes, Format will produce.
	MaxText int
	// ScanCap bounds Parse and Dim when called with a negative limit.
	ScanCap int
}

func (c Codec) maxDim() int {
	if c.MaxDim <= 0 {
		return DefaultMaxDim
	}
	return c.MaxDim
}

func (c Codec) maxText() int {
	if c.MaxText <= 0 {
		return DefaultMaxText
	}
	return c.MaxText
}

func (c Codec) scanCap() int {
	if c.ScanCap <= 0 {
		return DefaultScanCap
	}
	return c.ScanCap
}

func (c Codec) bound(text []byte, limit int) []byte {
	if limit < 0 {
		limit = c.scanCap()
	}
	if limit < len(text) {
		return text[:limit]
	}
	return text
}

// Parse loosely parses a bracketed, comma or whitespace separated list of
// numbers. Only the first limit bytes are scanned; a negative limit scans up
// to the first NUL byte, capped at ScanCap. Empty input yields an empty,
// non-nil vector. ErrMalformed is returned when a token is not a number.
func (c Codec) Parse(text []byte, limit int) ([]float32, error) {
	p := &parser{text: c.bound(text, limit), maxDim: c.maxDim()}
	if err := p.run(); err != nil {
		return nil, err
	}
	if p.buf == nil {
		return []float32{}, nil
	}
	return p.buf[:p.n], nil
}

// Dim counts the elements Parse would produce without storing them. It
// returns -1 when the text is malformed.
func (c Codec) Dim(text []byte, limit int) int {
	p := &parser{text: c.bound(text, limit), dimOnly: true}
	if err := p.run(); err != nil {
		return -1
	}
	return p.n
}

// Collect builds a vector from numeric scalars. Integer and floating-point
// arguments are converted to float32; any other argument fails the whole
// collection with ErrInvalidType.
func (c Codec) Collect(args []any) ([]byte, error) {
	if len(args) > c.maxDim() {
		return nil, ErrTooBig
	}
	out := make([]byte, len(args)*ElemSize)
	for i, arg := range args {
		var value float32
		switch v := arg.(type) {
		case int64:
			value = float32(v)
		case int:
			value = float32(v)
		case int32:
			value = float32(v)
		case float64:
			value = float32(v)
		case float32:
			value = v
		default:
			return nil, fmt.Errorf("%w: argument %d has type %T", ErrInvalidType, i, arg)
		}
		put(out, i, value)
	}
	return out, nil
}

// Convert turns host arguments into a vector BLOB. Several arguments, or a
// single number, are collected as scalars; a BLOB is validated and copied;
// a string is parsed. It reports false, with a nil error, when the input
// does not describe a vector.
func (c Codec) Convert(args ...any) ([]byte, bool, error) {
	if len(args) == 0 {
		return nil, false, nil
	}
	if len(args) > 1 || isNumber(args[0]) {
		out, err := c.Collect(args)
		if err != nil {
			if errors.Is(err, ErrTooBig) {
				return nil, false, err
			}
			return nil, false, nil
		}
		return out, true, nil
	}
	switch v := args[0].(type) {
	case []byte:
		view, ok := Decode(v)
		if !ok {
			return nil, false, nil
		}
		return append(make([]byte, 0, len(v)), view.Bytes()...), true, nil
	case string:
		vec, err := c.Parse([]byte(v), len(v))
		switch {
		case err == nil:
			return Encode(vec), true, nil
		case errors.Is(err, ErrMalformed):
			return nil, false, nil
		default:
			return nil, false, err
		}
	}
	return nil, false, nil
}

func isNumber(v any) bool {
	switch v.(type) {
	case int64, int, int32, float64, float32:
		return true
	}
	return false
}

// Zero returns a zero-filled vector of dim elements. A negative dim yields an
// empty vector.
func (c Codec) Zero(dim int) ([]byte, error) {
	if dim < 0 {
		dim = 0
	}
	if dim > c.maxDim() {
		return nil, ErrTooBig
	}
	return make([]byte, dim*ElemSize), nil
}

// Format renders v as "[e0,e1,...]" using the shortest decimal form that
// round-trips each float32 element.
func (c Codec) Format(v View) (string, error) {
	limit := c.maxText()
	var sb strings.Builder
	var scratch [32]byte
	sb.WriteByte('[')
	for i := 0; i < v.Dim(); i++ {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.Write(strconv.AppendFloat(scratch[:0], float64(v.At(i)), 'g', -1, 32))
		if sb.Len() >= limit {
			return "", ErrTooBig
		}
	}
	sb.WriteByte(']')
	if sb.Len() > limit {
		return "", ErrTooBig
	}
	return sb.String(), nil
}
