// Package breader implements the buffered, position-tracking byte
// source described in spec.md §4.2. It is the leaf "Byte reader"
// component: a sliding window over successive fixed-size blocks read
// from an io.Reader, with one-byte pushback, a saturating line counter
// and a column counter that is reported once when it reaches its
// maximum.
//
// It is grounded on the teacher's (ltick-go-ini) raw-buffer handling in
// readerc.go: a fixed block is refilled on exhaustion and the cursor
// addresses bytes by position rather than by re-slicing on every read.
package breader

import "io"

// maxCounter is the ceiling of the line and column counters. The line
// counter stops there; the column counter, which also addresses the
// buffer, is reported once on reaching it but keeps counting and wraps
// to 0.
const maxCounter = ^uint32(0)

// Location is a 1-based line, 0-based column pair.
type Location struct {
	Line uint32
	Col  uint32
}

// Reader is a buffered byte source with a stable column-addressable
// window: for the lifetime of the current block, buf[col-begCol] is
// the byte at column col. Refilling never grows buf past blockSize;
// overflow of the *block* is not possible since it is read eagerly
// in blockSize chunks, but a short read latches EOF as per spec.md §5.
type Reader struct {
	src       io.Reader
	blockSize int
	buf       []byte
	begCol    uint32 // column number of buf[0]
	endCol    uint32 // column one past the end of buf

	line, col uint32
	eof       bool

	warnedMaxLine bool
	warnedMaxCol  bool
	onSaturate    func(loc Location, what string)
}

// New returns a Reader over src using blocks of blockSize bytes
// (spec.md §6: io_buf_size, default 1024). onSaturate, if non-nil, is
// invoked exactly once per counter the first time it saturates.
func New(src io.Reader, blockSize int, onSaturate func(loc Location, what string)) *Reader {
	if blockSize <= 0 {
		blockSize = 1024
	}
	return &Reader{
		src:        src,
		blockSize:  blockSize,
		line:       1,
		onSaturate: onSaturate,
	}
}

// Location returns the current line/column.
func (r *Reader) Location() Location {
	return Location{Line: r.line, Col: r.col}
}

// EOF reports whether the underlying source is exhausted.
func (r *Reader) EOF() bool {
	return r.eof
}

// Get returns the next byte, advancing the column. ok is false once
// EOF has been reached; EOF latches permanently (spec.md §4.2, §5:
// "the reader treats a short read as EOF").
func (r *Reader) Get() (b byte, ok bool) {
	if r.col != r.endCol {
		b = r.buf[r.col-r.begCol]
		r.col++
		r.noteColSaturationIfNeeded()
		return b, true
	}
	if r.eof {
		return 0, false
	}
	if cap(r.buf) < r.blockSize {
		r.buf = make([]byte, r.blockSize)
	}
	n, _ := r.src.Read(r.buf[:r.blockSize])
	if n <= 0 {
		r.eof = true
		// any short/errored read is treated as EOF per spec.md §5
		return 0, false
	}
	r.buf = r.buf[:n]
	r.begCol = r.col
	r.endCol = r.begCol + uint32(n)
	b = r.buf[r.col-r.begCol]
	r.col++
	r.noteColSaturationIfNeeded()
	return b, true
}

// Unget pushes back exactly one byte. Valid only if the cursor has
// advanced within the current block; a no-op otherwise (matching the
// C source's _ungetc, which silently ignores ungetting across a block
// boundary).
func (r *Reader) Unget() {
	if r.col != r.begCol {
		r.col--
	}
}

// Newline must be called once the caller has consumed a '\n'. It
// advances the line counter (saturating) and slides the window so the
// new line begins at column 0.
func (r *Reader) Newline() {
	if r.line < maxCounter {
		r.line++
	} else if !r.warnedMaxLine {
		r.warnedMaxLine = true
		if r.onSaturate != nil {
			r.onSaturate(r.Location(), "line")
		}
	}
	delta := r.col
	r.begCol -= delta
	r.endCol -= delta
	r.col = 0
}

// noteColSaturationIfNeeded reports the one-shot column-saturation
// note once col reaches maxCounter; in practice this requires an
// absurdly long single line.
func (r *Reader) noteColSaturationIfNeeded() {
	if r.col == maxCounter && !r.warnedMaxCol {
		r.warnedMaxCol = true
		if r.onSaturate != nil {
			r.onSaturate(r.Location(), "column")
		}
	}
}
