package netfile

import (
	"bufio"
	"errors"
	"io"
	"math"
	"strconv"

	"github.com/hupe1980/hups"
)

// tokenizer splits a parameter stream into integer tokens, skipping "//"
// comments. It tracks the line of the last token for error reports.
type tokenizer struct {
	r      *bufio.Reader
	source string
	line   int
	buf    []byte

	// inComment is set when a token ended at the start of a "//" comment.
	inComment bool
}

func newTokenizer(r io.Reader, source string) *tokenizer {
	return &tokenizer{r: bufio.NewReader(r), source: source, line: 1}
}

// next returns the next raw token, or io.EOF at the end of the stream.
func (t *tokenizer) next() (string, error) {
	t.buf = t.buf[:0]
	if t.inComment {
		t.inComment = false
		if err := t.skipLine(); err != nil {
			return "", err
		}
	}
	for {
		b, err := t.r.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) && len(t.buf) > 0 {
				return string(t.buf), nil
			}
			return "", err
		}
		switch {
		case b == '/':
			peek, err := t.r.Peek(1)
			if err == nil && peek[0] == '/' {
				if len(t.buf) > 0 {
					t.inComment = true
					return string(t.buf), nil
				}
				if err := t.skipLine(); err != nil {
					return "", err
				}
				continue
			}
			t.buf = append(t.buf, b)
		case isSpace(b):
			if len(t.buf) > 0 {
				_ = t.r.UnreadByte()
				return string(t.buf), nil
			}
			if b == '\n' {
				t.line++
			}
		default:
			t.buf = append(t.buf, b)
		}
	}
}

func (t *tokenizer) skipLine() error {
	_, err := t.r.ReadBytes('\n')
	if err != nil {
		return err
	}
	t.line++
	return nil
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f' || b == '\v'
}

// nextInt reads one integer token. A missing token is reported as a
// ParseError wrapping io.ErrUnexpectedEOF.
func (t *tokenizer) nextInt(what string) (int64, error) {
	tok, err := t.next()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return 0, hups.NewParseError(t.source, what, t.line, io.ErrUnexpectedEOF)
		}
		return 0, hups.NewParseError(t.source, what, t.line, err)
	}
	v, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		return 0, hups.NewParseError(t.source, tok, t.line, err)
	}
	return v, nil
}

// nextHeader reads a header field, which must fit in an int32.
func (t *tokenizer) nextHeader(what string) (int, error) {
	v, err := t.nextInt(what)
	if err != nil {
		return 0, err
	}
	if v < math.MinInt32 || v > math.MaxInt32 {
		return 0, hups.NewParseError(t.source, strconv.FormatInt(v, 10), t.line, strconv.ErrRange)
	}
	return int(v), nil
}

// nextColumn reads a generator column, a 32-bit pattern written either
// signed or unsigned.
func (t *tokenizer) nextColumn() (uint32, error) {
	v, err := t.nextInt("column")
	if err != nil {
		return 0, err
	}
	if v < math.MinInt32 || v > math.MaxUint32 {
		return 0, hups.NewParseError(t.source, strconv.FormatInt(v, 10), t.line, strconv.ErrRange)
	}
	return uint32(v), nil
}
