// Package io provides the program image and memory snapshot formats of
// the UVM tools.
package io

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// zstdMagic is the frame header of a zstd compressed stream.
var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// Rom is a binary program image.
type Rom struct {
	Data []byte
}

var _ io.ReaderFrom = (*Rom)(nil)
var _ io.WriterTo = (*Rom)(nil)

// ReadFrom loads an image, replacing Data. A zstd compressed image is
// decompressed transparently. The count is of bytes consumed from r.
func (rom *Rom) ReadFrom(r io.Reader) (n int64, err error) {
	cr := &countReader{r: r}
	defer func() { n = cr.n }()

	br := bufio.NewReader(cr)

	head, _ := br.Peek(len(zstdMagic))

	var src io.Reader = br
	if bytes.Equal(head, zstdMagic) {
		var dec *zstd.Decoder
		dec, err = zstd.NewReader(br)
		if err != nil {
			err = errors.Join(ErrImageRead, err)
			return
		}
		defer dec.Close()
		src = dec
	}

	var buf bytes.Buffer
	_, err = buf.ReadFrom(src)
	if err != nil {
		err = errors.Join(ErrImageRead, err)
		return
	}

	rom.Data = buf.Bytes()

	return
}

// WriteTo writes the raw image.
func (rom *Rom) WriteTo(w io.Writer) (n int64, err error) {
	nw, err := w.Write(rom.Data)
	n = int64(nw)
	if err != nil {
		err = errors.Join(ErrImageWrite, err)
	}
	return
}

// Compress writes the image as a zstd stream.
func (rom *Rom) Compress(w io.Writer) (err error) {
	enc, err := zstd.NewWriter(w)
	if err != nil {
		err = errors.Join(ErrImageWrite, err)
		return
	}

	_, err = enc.Write(rom.Data)
	if err != nil {
		enc.Close()
		err = errors.Join(ErrImageWrite, err)
		return
	}

	err = enc.Close()
	if err != nil {
		err = errors.Join(ErrImageWrite, err)
	}

	return
}

// Hex renders the image as space separated upper case hex bytes.
func (rom *Rom) Hex() string {
	var sb strings.Builder
	for n, b := range rom.Data {
		if n > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02X", b)
	}
	return sb.String()
}

type countReader struct {
	r io.Reader
	n int64
}

func (cr *countReader) Read(p []byte) (n int, err error) {
	n, err = cr.r.Read(p)
	cr.n += int64(n)
	return
}
