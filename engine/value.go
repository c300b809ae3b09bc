package engine

import (
	"bytes"
	"database/sql/driver"
	"fmt"
)

// Value is a SQL function argument: Null, Integer, Float, Text or Blob.
type Value interface {
	native() any
}

type (
	// Null is the SQL NULL argument.
	Null struct{}
	// Integer is a SQL INTEGER argument.
	Integer int64
	// Float is a SQL REAL argument.
	Float float64
	// Text is a SQL TEXT argument.
	Text []byte
	// Blob is a SQL BLOB argument.
	Blob []byte
)

func (Null) native() any      { return nil }
func (v Integer) native() any { return int64(v) }
func (v Float) native() any   { return float64(v) }
func (v Text) native() any    { return string(v) }
func (v Blob) native() any    { return []byte(v) }

// FromDriver maps a value passed by the driver to a Value. Unknown types
// become Null.
func FromDriver(v driver.Value) Value {
	switch x := v.(type) {
	case nil:
		return Null{}
	case int64:
		return Integer(x)
	case float64:
		return Float(x)
	case bool:
		if x {
			return Integer(1)
		}
		return Integer(0)
	case string:
		return Text(x)
	case []byte:
		return Blob(x)
	default:
		return Null{}
	}
}

func natives(args []Value) []any {
	out := make([]any, len(args))
	for i, a := range args {
		out[i] = a.native()
	}
	return out
}

// Result is the outcome of a SQL function call: NullResult, IntResult,
// FloatResult, TextResult, BlobResult or ErrorResult.
type Result interface {
	// Driver converts the result to what the driver expects.
	Driver() (driver.Value, error)
}

type (
	// NullResult reports SQL NULL.
	NullResult struct{}
	// IntResult reports an INTEGER.
	IntResult int64
	// FloatResult reports a REAL.
	FloatResult float64
	// TextResult reports TEXT. Owned data is handed over to the driver,
	// borrowed data is copied.
	TextResult struct {
		Data  []byte
		Owned bool
	}
	// BlobResult reports a BLOB with the same ownership convention as
	// TextResult.
	BlobResult struct {
		Data  []byte
		Owned bool
	}
	// ErrorResult reports an error with a SQLite result code. The driver
	// fails the statement with SQLITE_ERROR; Code reaches the caller only
	// in the message text.
	ErrorResult struct {
		Code int
		Msg  string
	}
)

// SQLite result codes used by ErrorResult.
const (
	CodeError  = 1
	CodeTooBig = 18
)

func (NullResult) Driver() (driver.Value, error)    { return nil, nil }
func (r IntResult) Driver() (driver.Value, error)   { return int64(r), nil }
func (r FloatResult) Driver() (driver.Value, error) { return float64(r), nil }
func (r TextResult) Driver() (driver.Value, error)  { return string(r.Data), nil }

func (r BlobResult) Driver() (driver.Value, error) {
	data := r.Data
	if !r.Owned {
		data = bytes.Clone(data)
	}
	if data == nil {
		data = []byte{}
	}
	return data, nil
}

func (r ErrorResult) Driver() (driver.Value, error) { return nil, &Error{Code: r.Code, Msg: r.Msg} }

// Error is returned to the driver for an ErrorResult. Its message ends with
// the result code, e.g. "vector: too big (18)".
type Error struct {
	Code int
	Msg  string
}

func (e *Error) Error() string { return fmt.Sprintf("%s (%d)", e.Msg, e.Code) }
