package vector

import (
	"encoding/binary"
	"math"
)

// ElemSize is the byte width of a single vector element.
const ElemSize = 4

// View is a read-only interpretation of a BLOB as a vector. It borrows the
// underlying bytes and must not outlive them.
type View struct {
	data []byte
}

// Decode interprets b as a vector without copying. It reports false when the
// length of b is not a multiple of ElemSize. An empty BLOB is a valid
// zero-dimension vector.
func Decode(b []byte) (View, bool) {
	if len(b)%ElemSize != 0 {
		return View{}, false
	}
	return View{data: b}, true
}

// DecodeValue decodes v when it is a BLOB ([]byte). Any other type,
// including text, is not a vector.
func DecodeValue(v any) (View, bool) {
	b, ok := v.([]byte)
	if !ok {
		return View{}, false
	}
	return Decode(b)
}

// Dim returns the number of elements.
func (v View) Dim() int { return len(v.data) / ElemSize }

// At returns the i-th element.
func (v View) At(i int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(v.data[i*ElemSize:]))
}

// Bytes returns the borrowed backing bytes.
func (v View) Bytes() []byte { return v.data }

// Floats copies the elements into a new slice.
func (v View) Floats() []float32 {
	out := make([]float32, v.Dim())
	for i := range out {
		out[i] = v.At(i)
	}
	return out
}

// Encode encodes vec into a BLOB: a little-endian sequence of IEEE 754
// float32 values without a length prefix. An empty vec yields an empty,
// non-nil BLOB.
func Encode(vec []float32) []byte {
	b := make([]byte, len(vec)*ElemSize)
	for i, v := range vec {
		put(b, i, v)
	}
	return b
}

func put(b []byte, i int, v float32) {
	binary.LittleEndian.PutUint32(b[i*ElemSize:], math.Float32bits(v))
}
