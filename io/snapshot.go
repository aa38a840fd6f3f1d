package io

import (
	"bufio"
	"errors"
	"io"
	"strconv"
)

// Snapshot is a range of memory cells starting at address Start.
type Snapshot struct {
	Start  int
	Values []int64
}

var _ io.WriterTo = (*Snapshot)(nil)

// WriteTo writes the snapshot as a JSON object mapping each address, as a
// decimal string, to its value. Keys are emitted in ascending address
// order with an indent of two spaces.
func (snap *Snapshot) WriteTo(w io.Writer) (n int64, err error) {
	cw := &countWriter{w: w}
	bw := bufio.NewWriter(cw)

	if len(snap.Values) == 0 {
		bw.WriteString("{}")
	} else {
		bw.WriteString("{\n")
		for i, value := range snap.Values {
			bw.WriteString(`  "`)
			bw.WriteString(strconv.Itoa(snap.Start + i))
			bw.WriteString(`": `)
			bw.WriteString(strconv.FormatInt(value, 10))
			if i+1 < len(snap.Values) {
				bw.WriteByte(',')
			}
			bw.WriteByte('\n')
		}
		bw.WriteString("}")
	}

	err = bw.Flush()
	n = cw.n
	if err != nil {
		err = errors.Join(ErrImageWrite, err)
	}

	return
}

type countWriter struct {
	w io.Writer
	n int64
}

func (cw *countWriter) Write(p []byte) (n int, err error) {
	n, err = cw.w.Write(p)
	cw.n += int64(n)
	return
}
