package vector

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/vec/search"
)

func view(t *testing.T, vec ...float32) View {
	t.Helper()
	v, ok := Decode(Encode(vec))
	require.True(t, ok)
	return v
}

func floats(t *testing.T, b []byte) []float32 {
	t.Helper()
	v, ok := Decode(b)
	require.True(t, ok)
	return v.Floats()
}

func TestElementwise(t *testing.T) {
	a := view(t, 1, 2, 3)
	b := view(t, 4, 5, 6)

	tests := []struct {
		name string
		fn   func(a, b View) ([]byte, bool)
		want []float32
	}{
		{"Add", Add, []float32{5, 7, 9}},
		{"Sub", Sub, []float32{-3, -3, -3}},
		{"Mul", Mul, []float32{4, 10, 18}},
		{"Div", Div, []float32{0.25, 0.4, 0.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.fn(a, b)
			require.True(t, ok)
			assert.Equal(t, tt.want, floats(t, got))

			_, ok = tt.fn(a, view(t, 1, 2))
			assert.False(t, ok)
		})
	}
}

func TestElementwise_Empty(t *testing.T) {
	got, ok := Add(view(t), view(t))
	require.True(t, ok)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestDiv_ByZero(t *testing.T) {
	got, ok := Div(view(t, 1, -1, 0), view(t, 0, 0, 0))
	require.True(t, ok)
	out := floats(t, got)
	assert.True(t, math.IsInf(float64(out[0]), 1))
	assert.True(t, math.IsInf(float64(out[1]), -1))
	assert.True(t, math.IsNaN(float64(out[2])))
}

func TestAddSub_Recovers(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for n := 0; n < 50; n++ {
		dim := rng.Intn(64)
		av := make([]float32, dim)
		bv := make([]float32, dim)
		for i := range av {
			av[i] = rng.Float32()*200 - 100
			bv[i] = rng.Float32()*200 - 100
		}
		sum, ok := Add(view(t, av...), view(t, bv...))
		require.True(t, ok)
		sumView, _ := Decode(sum)
		back, ok := Sub(sumView, view(t, bv...))
		require.True(t, ok)
		for i, got := range floats(t, back) {
			assert.InDelta(t, av[i], got, 1e-4)
		}
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want int
	}{
		{"Equal", []float32{1, 2, 3}, []float32{1, 2, 3}, 0},
		{"Less", []float32{1, 2, 3}, []float32{1, 3, 0}, -1},
		{"Greater", []float32{2, 0}, []float32{1, 9}, 1},
		{"Empty", nil, nil, 0},
		{"NegativeZero", []float32{0}, []float32{float32(math.Copysign(0, -1))}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Compare(view(t, tt.a...), view(t, tt.b...))
			require.True(t, ok)
			assert.Equal(t, tt.want, got)

			rev, ok := Compare(view(t, tt.b...), view(t, tt.a...))
			require.True(t, ok)
			assert.Equal(t, -tt.want, rev)
		})
	}

	_, ok := Compare(view(t, 1), view(t, 1, 2))
	assert.False(t, ok)
}

func TestCompare_Reflexive(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for n := 0; n < 20; n++ {
		vec := make([]float32, rng.Intn(32))
		for i := range vec {
			vec[i] = rng.Float32()
		}
		got, ok := Compare(view(t, vec...), view(t, vec...))
		require.True(t, ok)
		assert.Zero(t, got)
	}
}

func TestCosine(t *testing.T) {
	sim, ok := Cosine(view(t, 1, 0), view(t, 0, 1))
	require.True(t, ok)
	assert.Equal(t, 0.0, sim)

	sim, ok = Cosine(view(t, 1, 0), view(t, 1, 0))
	require.True(t, ok)
	assert.InDelta(t, 1.0, sim, 1e-12)

	sim, ok = Cosine(view(t, 1, 2), view(t, -1, -2))
	require.True(t, ok)
	assert.InDelta(t, -1.0, sim, 1e-12)

	sim, ok = Cosine(view(t, 0, 0), view(t, 1, 1))
	require.True(t, ok)
	assert.True(t, math.IsNaN(sim))

	_, ok = Cosine(view(t, 1), view(t, 1, 2))
	assert.False(t, ok)
}

func TestDistance(t *testing.T) {
	d, ok := Distance(view(t, 0, 0), view(t, 3, 4))
	require.True(t, ok)
	assert.Equal(t, 5.0, d)

	d, ok = Distance(view(t), view(t))
	require.True(t, ok)
	assert.Zero(t, d)

	_, ok = Distance(view(t, 1), view(t, 1, 2))
	assert.False(t, ok)
}

func TestNormAverage(t *testing.T) {
	assert.Equal(t, 5.0, Norm(view(t, 3, 4)))
	assert.Zero(t, Norm(view(t)))

	assert.Equal(t, 2.0, Average(view(t, 1, 2, 3)))
	assert.True(t, math.IsNaN(Average(view(t))))
}

// TestKernels_MatchSearch cross-checks Distance, Norm and Cosine against the
// float32 implementations in viant/vec.
func TestKernels_MatchSearch(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for n := 0; n < 25; n++ {
		dim := 1 + rng.Intn(128)
		av := make([]float32, dim)
		bv := make([]float32, dim)
		for i := range av {
			av[i] = rng.Float32()*2 - 1
			bv[i] = rng.Float32()*2 - 1
		}

		d, ok := Distance(view(t, av...), view(t, bv...))
		require.True(t, ok)
		assert.InEpsilon(t, float64(search.Float32s(av).EuclideanDistance(bv)), d, 1e-4)

		assert.InEpsilon(t, float64(search.Float32s(av).Magnitude()), Norm(view(t, av...)), 1e-4)

		c, ok := Cosine(view(t, av...), view(t, bv...))
		require.True(t, ok)
		assert.InDelta(t, 1-float64(search.Float32s(av).CosineDistance(bv)), c, 1e-4)
	}
}
