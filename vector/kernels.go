package vector

import "math"

// Add returns a + b elementwise. It reports false when the dimensions differ.
func Add(a, b View) ([]byte, bool) {
	return elementwise(a, b, func(x, y float32) float32 { return x + y })
}

// Sub returns a - b elementwise.
func Sub(a, b View) ([]byte, bool) {
	return elementwise(a, b, func(x, y float32) float32 { return x - y })
}

// Mul returns the elementwise (Hadamard) product.
func Mul(a, b View) ([]byte, bool) {
	return elementwise(a, b, func(x, y float32) float32 { return x * y })
}

// Div returns a / b elementwise. Zero divisors are not checked; the result
// carries the IEEE 754 infinities and NaNs.
func Div(a, b View) ([]byte, bool) {
	return elementwise(a, b, func(x, y float32) float32 { return x / y })
}

func elementwise(a, b View, op func(x, y float32) float32) ([]byte, bool) {
	dim := a.Dim()
	if dim != b.Dim() {
		return nil, false
	}
	out := make([]byte, dim*ElemSize)
	for i := 0; i < dim; i++ {
		put(out, i, op(a.At(i), b.At(i)))
	}
	return out, true
}

// Compare orders a and b lexicographically and returns -1, 0 or 1.
func Compare(a, b View) (int, bool) {
	dim := a.Dim()
	if dim != b.Dim() {
		return 0, false
	}
	for i := 0; i < dim; i++ {
		x, y := a.At(i), b.At(i)
		switch {
		case x < y:
			return -1, true
		case x > y:
			return 1, true
		}
	}
	return 0, true
}

// Cosine returns the cosine similarity of a and b, accumulated in float64.
// A zero-magnitude operand yields NaN.
func Cosine(a, b View) (float64, bool) {
	dim := a.Dim()
	if dim != b.Dim() {
		return 0, false
	}
	var dot, na2, nb2 float64
	for i := 0; i < dim; i++ {
		va := float64(a.At(i))
		vb := float64(b.At(i))
		dot += va * vb
		na2 += va * va
		nb2 += vb * vb
	}
	return dot / math.Sqrt(na2*nb2), true
}

// Distance returns the Euclidean (L2) distance between a and b.
func Distance(a, b View) (float64, bool) {
	dim := a.Dim()
	if dim != b.Dim() {
		return 0, false
	}
	var sum float64
	for i := 0; i < dim; i++ {
		d := float64(a.At(i)) - float64(b.At(i))
		sum += d * d
	}
	return math.Sqrt(sum), true
}

// Norm returns the L2 norm of v.
func Norm(v View) float64 {
	var sum float64
	for i := 0; i < v.Dim(); i++ {
		x := float64(v.At(i))
		sum += x * x
	}
	return math.Sqrt(sum)
}

// Average returns the arithmetic mean of the elements; NaN for an empty
// vector.
func Average(v View) float64 {
	var sum float64
	for i := 0; i < v.Dim(); i++ {
		sum += float64(v.At(i))
	}
	return sum / float64(v.Dim())
}
