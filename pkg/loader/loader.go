// Package loader turns line-delimited sources into int64 sequences.
//
// A source holds one base-10 signed integer per line. Surrounding whitespace,
// including a trailing carriage return, is ignored. Anything else, blank lines
// included, aborts the load with a *LoadError naming the offending line.
package loader

import (
	"bufio"
	"context"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/seqstats/internal/constants"
)

// ctxCheckInterval is how many lines are read between two context checks.
const ctxCheckInterval = 1 << 16

// Loader supplies a sequence.
type Loader interface {
	// Load reads the whole sequence. The caller owns the returned slice.
	Load(ctx context.Context) ([]int64, error)
	// Source names where the sequence comes from, for error messages and logs.
	Source() string
}

// ParseLine parses a single line of a source.
func ParseLine(line string) (int64, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return 0, ewrap.New("blank line")
	}

	v, err := strconv.ParseInt(line, 10, 64)
	if err != nil {
		return 0, ewrap.Wrapf(err, "parse %q", line)
	}

	return v, nil
}

// ReadSequence reads r to the end and parses one integer per line.
// source is only used to label errors.
func ReadSequence(ctx context.Context, source string, r io.Reader) ([]int64, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), constants.MaxLineBytes)

	var seq []int64

	line := 0
	for scanner.Scan() {
		line++

		if line%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, &LoadError{Source: source, Line: line, Err: err}
			}
		}

		v, err := ParseLine(scanner.Text())
		if err != nil {
			return nil, &LoadError{Source: source, Line: line, Err: err}
		}

		seq = append(seq, v)
	}

	err := scanner.Err()
	if err != nil {
		return nil, &LoadError{Source: source, Line: line + 1, Err: err}
	}

	if seq == nil {
		seq = []int64{}
	}

	return seq, nil
}

// ReaderLoader reads a sequence from an io.Reader, such as standard input or a request body.
type ReaderLoader struct {
	Name   string
	Reader io.Reader
}

// NewReaderLoader returns a loader reading r, labelled name.
func NewReaderLoader(name string, r io.Reader) *ReaderLoader {
	return &ReaderLoader{Name: name, Reader: r}
}

// Load reads the whole reader.
func (l *ReaderLoader) Load(ctx context.Context) ([]int64, error) {
	return ReadSequence(ctx, l.Name, l.Reader)
}

// Source returns the reader's label.
func (l *ReaderLoader) Source() string {
	return l.Name
}

// FileLoader reads a sequence from a file.
type FileLoader struct {
	Path string
}

// NewFileLoader returns a loader reading the file at path.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{Path: path}
}

// Load opens and reads the file.
func (l *FileLoader) Load(ctx context.Context) ([]int64, error) {
	f, err := os.Open(l.Path)
	if err != nil {
		return nil, &LoadError{Source: l.Path, Err: err}
	}
	defer f.Close()

	return ReadSequence(ctx, l.Path, f)
}

// Source returns the file path.
func (l *FileLoader) Source() string {
	return l.Path
}
