package engine

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/viant/vecdex/pkg/log"
	"github.com/viant/vecdex/vector"
	sqlite "modernc.org/sqlite"
)

// Impl implements a SQL scalar function over typed arguments.
type Impl func(args []Value) Result

// Function is an entry of the vector function table.
type Function struct {
	Name string
	// NArg is the fixed arity, or -1 for a variadic function.
	NArg int32
	// Deterministic marks side-effect free functions SQLite may fold.
	Deterministic bool
	Impl          Impl
}

// Functions returns the vector function table for cfg. vector_debug is
// included only in debug mode and logs through logger.
func Functions(cfg *Config, logger *zerolog.Logger) []Function {
	codec := cfg.Codec()
	fns := []Function{
		{Name: "vector", NArg: -1, Deterministic: true, Impl: convertFunc(codec)},
		{Name: "vector0", NArg: 1, Deterministic: true, Impl: zeroFunc(codec)},
		{Name: "vector_from_json", NArg: 1, Deterministic: true, Impl: convertFunc(codec)},
		{Name: "vector_to_json", NArg: 1, Deterministic: true, Impl: toJSONFunc(codec)},
		{Name: "vector_compare", NArg: 2, Deterministic: true, Impl: compareFunc},
		{Name: "vector_cosim", NArg: 2, Deterministic: true, Impl: scoreFunc(vector.Cosine)},
		{Name: "vector_dist", NArg: 2, Deterministic: true, Impl: scoreFunc(vector.Distance)},
		{Name: "vector_dim", NArg: 1, Deterministic: true, Impl: dimFunc},
		{Name: "vector_avg", NArg: 1, Deterministic: true, Impl: reduceFunc(vector.Average)},
		{Name: "vector_norm", NArg: 1, Deterministic: true, Impl: reduceFunc(vector.Norm)},
		{Name: "vector_add", NArg: 2, Deterministic: true, Impl: elementwiseFunc(vector.Add)},
		{Name: "vector_sub", NArg: 2, Deterministic: true, Impl: elementwiseFunc(vector.Sub)},
		{Name: "vector_mul", NArg: 2, Deterministic: true, Impl: elementwiseFunc(vector.Mul)},
		{Name: "vector_div", NArg: 2, Deterministic: true, Impl: elementwiseFunc(vector.Div)},
	}
	if cfg.Debug {
		fns = append(fns, Function{Name: "vector_debug", NArg: 1, Impl: debugFunc(logger)})
	}
	return fns
}

var registration struct {
	once sync.Once
	err  error
}

// Register registers the vector function table with the driver so the
// functions are available on connections opened after this call. The
// driver keeps a process-wide registry: the first call registers and later
// calls return its outcome. Registration stops at the first failure.
func Register(ctx context.Context, cfg *Config) error {
	registration.once.Do(func() {
		registration.err = register(ctx, cfg)
	})
	return registration.err
}

func register(ctx context.Context, cfg *Config) error {
	logger := log.FromCtx(ctx)
	for _, fn := range Functions(cfg, logger) {
		xFunc := adapt(fn.Impl)
		var err error
		if fn.Deterministic {
			err = sqlite.RegisterDeterministicScalarFunction(fn.Name, fn.NArg, xFunc)
		} else {
			err = sqlite.RegisterScalarFunction(fn.Name, fn.NArg, xFunc)
		}
		if err != nil {
			logger.Error().Err(err).Str("function", fn.Name).Msg("failed to register vector function")
			return fmt.Errorf("%s: %w", fn.Name, err)
		}
		logger.Debug().Str("function", fn.Name).Int32("nargs", fn.NArg).Msg("registered vector function")
	}
	return nil
}

// RegisterVectorFunctions registers the vector functions using the
// environment configuration. It must run before the connections that use
// the functions are opened.
func RegisterVectorFunctions(_ *sql.DB) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	return Register(context.Background(), cfg)
}

func adapt(impl Impl) func(*sqlite.FunctionContext, []driver.Value) (driver.Value, error) {
	return func(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
		values := make([]Value, len(args))
		for i, arg := range args {
			values[i] = FromDriver(arg)
		}
		return impl(values).Driver()
	}
}

func errorResult(name string, err error) Result {
	code := CodeError
	if errors.Is(err, vector.ErrTooBig) {
		code = CodeTooBig
	}
	return ErrorResult{Code: code, Msg: name + ": " + err.Error()}
}

func decode(v Value) (vector.View, bool) {
	return vector.DecodeValue(v.native())
}

// operands decodes the first two arguments; any failure, including a
// dimension mismatch, makes the call return NULL.
func operands(args []Value) (vector.View, vector.View, bool) {
	if len(args) < 2 {
		return vector.View{}, vector.View{}, false
	}
	a, ok := decode(args[0])
	if !ok {
		return vector.View{}, vector.View{}, false
	}
	b, ok := decode(args[1])
	if !ok || a.Dim() != b.Dim() {
		return vector.View{}, vector.View{}, false
	}
	return a, b, true
}

func convertFunc(codec vector.Codec) Impl {
	return func(args []Value) Result {
		out, ok, err := codec.Convert(natives(args)...)
		if err != nil {
			return errorResult("vector", err)
		}
		if !ok {
			return NullResult{}
		}
		return BlobResult{Data: out, Owned: true}
	}
}

func zeroFunc(codec vector.Codec) Impl {
	return func(args []Value) Result {
		if len(args) < 1 {
			return NullResult{}
		}
		out, err := codec.Zero(intValue(args[0]))
		if err != nil {
			return errorResult("vector0", err)
		}
		return BlobResult{Data: out, Owned: true}
	}
}

func toJSONFunc(codec vector.Codec) Impl {
	return func(args []Value) Result {
		if len(args) < 1 {
			return NullResult{}
		}
		v, ok := decode(args[0])
		if !ok {
			return NullResult{}
		}
		text, err := codec.Format(v)
		if err != nil {
			return errorResult("vector_to_json", err)
		}
		return TextResult{Data: []byte(text), Owned: true}
	}
}

func compareFunc(args []Value) Result {
	a, b, ok := operands(args)
	if !ok {
		return NullResult{}
	}
	cmp, _ := vector.Compare(a, b)
	return IntResult(cmp)
}

func scoreFunc(score func(a, b vector.View) (float64, bool)) Impl {
	return func(args []Value) Result {
		a, b, ok := operands(args)
		if !ok {
			return NullResult{}
		}
		s, _ := score(a, b)
		return FloatResult(s)
	}
}

func elementwiseFunc(op func(a, b vector.View) ([]byte, bool)) Impl {
	return func(args []Value) Result {
		a, b, ok := operands(args)
		if !ok {
			return NullResult{}
		}
		out, _ := op(a, b)
		return BlobResult{Data: out, Owned: true}
	}
}

func dimFunc(args []Value) Result {
	if len(args) < 1 {
		return NullResult{}
	}
	v, ok := decode(args[0])
	if !ok {
		return NullResult{}
	}
	return IntResult(v.Dim())
}

func reduceFunc(reduce func(v vector.View) float64) Impl {
	return func(args []Value) Result {
		if len(args) < 1 {
			return NullResult{}
		}
		v, ok := decode(args[0])
		if !ok {
			return NullResult{}
		}
		return FloatResult(reduce(v))
	}
}

func debugFunc(logger *zerolog.Logger) Impl {
	return func(args []Value) Result {
		if len(args) < 1 {
			return NullResult{}
		}
		v, ok := decode(args[0])
		if !ok {
			return NullResult{}
		}
		var sb strings.Builder
		_ = vector.Debug(&sb, v, false)
		logger.Debug().Int("dim", v.Dim()).Msg(strings.TrimSuffix(sb.String(), "\n"))
		return NullResult{}
	}
}

// intValue reads an argument as an integer the way sqlite3_value_int does:
// the value is converted to a 64-bit integer (floats truncate and saturate,
// text and blobs use their leading integer, anything else is zero) and
// then truncated to its low 32 bits.
func intValue(v Value) int {
	return int(int32(int64Value(v)))
}

func int64Value(v Value) int64 {
	switch x := v.(type) {
	case Integer:
		return int64(x)
	case Float:
		f := float64(x)
		switch {
		case math.IsNaN(f):
			return 0
		case f >= math.MaxInt64:
			return math.MaxInt64
		case f <= math.MinInt64:
			return math.MinInt64
		}
		return int64(f)
	case Text:
		return leadingInt(x)
	case Blob:
		return leadingInt(x)
	}
	return 0
}

// leadingInt parses the optionally signed decimal prefix of s, saturating
// at the int64 range.
func leadingInt(s []byte) int64 {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n' || s[i] == '\r') {
		i++
	}
	neg := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}
	var n uint64
	for ; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		d := uint64(s[i] - '0')
		if n > (math.MaxUint64-d)/10 {
			n = math.MaxUint64
			break
		}
		n = n*10 + d
	}
	switch {
	case neg && n > 1<<63:
		return math.MinInt64
	case neg:
		return -int64(n)
	case n > math.MaxInt64:
		return math.MaxInt64
	}
	return int64(n)
}
