package vector

import (
	"fmt"
	"io"
	"strings"
)

const (
	debugTruncateAbove = 128
	debugEdge          = 16
)

// Debug writes v to w as "[e0, e1, ...]" followed by a newline. Unless full
// is set, vectors longer than 128 elements are elided to their first 17 and
// last 16 elements.
func Debug(w io.Writer, v View, full bool) error {
	dim := v.Dim()
	var sb strings.Builder
	sb.WriteByte('[')
	for i := 0; i < dim; i++ {
		if !full && dim > debugTruncateAbove && i > debugEdge && i < dim-debugEdge {
			sb.WriteString(", ...")
			i = dim - debugEdge - 1
			continue
		}
		if i != 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%g", v.At(i))
	}
	sb.WriteString("]\n")
	_, err := io.WriteString(w, sb.String())
	return err
}
