package stats

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// Source is a forward-only sequence of records. Next returns false once the
// input is exhausted or broken; Err tells the two apart.
type Source interface {
	Next() bool
	Row() []string
	Err() error
	Close() error
}

// Options control how a text input is decoded and split.
type Options struct {
	Delimiter string
	Encoding  string
}

const maxLineSize = 1024 * 1024

var encodings = map[string]encoding.Encoding{
	"":          nil,
	"utf-8":     nil,
	"utf8":      nil,
	"shift_jis": japanese.ShiftJIS,
	"sjis":      japanese.ShiftJIS,
	"cp932":     japanese.ShiftJIS,
	"euc-jp":    japanese.EUCJP,
}

func IsEncoding(name string) bool {
	_, ok := encodings[strings.ToLower(name)]
	return ok
}

// Open picks a source by the input's suffix: .xlsx and .xls are read as
// workbooks, anything else as delimited text lines. Inputs starting with
// http:// or https:// are fetched first.
func Open(ctx context.Context, input string, opts Options) (Source, error) {
	switch strings.ToLower(path.Ext(stripQuery(input))) {
	case ".xlsx":
		data, err := readAll(ctx, input)
		if err != nil {
			return nil, err
		}
		src, err := OpenXLSX(bytes.NewReader(data), input)
		if err != nil {
			return nil, err
		}
		return src, nil
	case ".xls":
		data, err := readAll(ctx, input)
		if err != nil {
			return nil, err
		}
		src, err := OpenXLS(bytes.NewReader(data), input)
		if err != nil {
			return nil, err
		}
		return src, nil
	default:
		src, err := OpenLines(ctx, input, opts)
		if err != nil {
			return nil, err
		}
		return src, nil
	}
}

// OpenLines opens a delimited text file, or fetches it if input is a URL.
func OpenLines(ctx context.Context, input string, opts Options) (*LineSource, error) {
	if isURL(input) {
		data, err := download(ctx, input)
		if err != nil {
			return nil, err
		}
		return NewLineSource(io.NopCloser(bytes.NewReader(data)), opts)
	}

	f, err := os.Open(input)
	if err != nil {
		return nil, fmt.Errorf("%w '%s': %v", ErrOpen, input, err)
	}
	s, err := NewLineSource(f, opts)
	if err != nil {
		f.Close()
		return nil, err
	}
	return s, nil
}

// LineSource yields the lines of a text input in order.
type LineSource struct {
	scanner   *bufio.Scanner
	closer    io.Closer
	delimiter string
	line      string
	first     bool
}

func NewLineSource(rc io.ReadCloser, opts Options) (*LineSource, error) {
	enc, ok := encodings[strings.ToLower(opts.Encoding)]
	if !ok {
		return nil, fmt.Errorf("unsupported encoding '%s'", opts.Encoding)
	}

	var r io.Reader = rc
	if enc != nil {
		r = transform.NewReader(rc, enc.NewDecoder())
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	delimiter := opts.Delimiter
	if delimiter == "" {
		delimiter = ","
	}

	return &LineSource{
		scanner:   scanner,
		closer:    rc,
		delimiter: delimiter,
		first:     true,
	}, nil
}

func (s *LineSource) Next() bool {
	if !s.scanner.Scan() {
		return false
	}
	s.line = s.scanner.Text()
	if s.first {
		s.line = strings.TrimPrefix(s.line, "\ufeff")
		s.first = false
	}
	return true
}

// Text is the current line without its line ending.
func (s *LineSource) Text() string {
	return s.line
}

// Row is the current line split on the delimiter.
func (s *LineSource) Row() []string {
	return strings.Split(s.line, s.delimiter)
}

func (s *LineSource) Err() error {
	if err := s.scanner.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRead, err)
	}
	return nil
}

func (s *LineSource) Close() error {
	return s.closer.Close()
}

func readAll(ctx context.Context, input string) ([]byte, error) {
	if isURL(input) {
		return download(ctx, input)
	}
	data, err := os.ReadFile(input)
	if err != nil {
		return nil, fmt.Errorf("%w '%s': %v", ErrOpen, input, err)
	}
	return data, nil
}

func stripQuery(input string) string {
	if i := strings.IndexAny(input, "?#"); i >= 0 && isURL(input) {
		return input[:i]
	}
	return input
}
