package csv

import (
	"bufio"
	"io"
	"strings"
)

const separator = ";"

// Header maps column names to indexes. Names are matched
// case-insensitively and with surrounding whitespace ignored.
type Header struct {
	index map[string]int
}

func NewHeader(line string) *Header {
	fields := strings.Split(line, separator)
	index := make(map[string]int, len(fields))
	for i, f := range fields {
		key := normalize(f)
		if _, ok := index[key]; !ok {
			index[key] = i
		}
	}
	return &Header{index: index}
}

func (h *Header) Index(name string) (int, bool) {
	i, ok := h.index[normalize(name)]
	return i, ok
}

func normalize(arg string) string {
	return strings.ToLower(strings.TrimSpace(arg))
}

// Row is one data line resolved against a header.
type Row struct {
	header *Header
	fields []string
}

func (h *Header) Row(line string) Row {
	return Row{header: h, fields: strings.Split(line, separator)}
}

// Value resolves a column by header name; missing columns and columns
// beyond the row's width yield the empty string.
func (r Row) Value(name string) string {
	i, ok := r.header.Index(name)
	if !ok {
		return ""
	}
	return r.Raw(i)
}

// Raw returns the column at index i without header lookup. The first
// column of exported sheets may carry a byte-order mark that defeats
// exact header matching, so position-style columns are read this way.
func (r Row) Raw(i int) string {
	if i < 0 || i >= len(r.fields) {
		return ""
	}
	return strings.TrimSpace(r.fields[i])
}

// Reader streams semicolon-delimited rows. The first non-blank line is
// the header; blank lines are skipped.
type Reader struct {
	scanner *bufio.Scanner
	header  *Header
}

func NewReader(r io.Reader) (*Reader, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		return &Reader{scanner: scanner, header: NewHeader(line)}, nil
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return nil, ErrEmptyCSV
}

func (r *Reader) Header() *Header {
	return r.header
}

// Next returns the next data row. ok is false once the stream is
// exhausted; check Err afterwards.
func (r *Reader) Next() (row Row, ok bool) {
	for r.scanner.Scan() {
		line := r.scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		return r.header.Row(line), true
	}
	return Row{}, false
}

func (r *Reader) Err() error {
	return r.scanner.Err()
}
