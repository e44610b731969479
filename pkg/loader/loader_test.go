package loader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/longbridgeapp/assert"

	"github.com/hyp3rd/seqstats/internal/sentinel"
)

func TestReadSequence(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     []int64
		wantLine int
	}{
		{name: "empty", input: "", want: []int64{}},
		{name: "single", input: "42", want: []int64{42}},
		{name: "trailing newline", input: "1\n2\n3\n", want: []int64{1, 2, 3}},
		{name: "crlf and padding", input: " -7\r\n8 \r\n\t9", want: []int64{-7, 8, 9}},
		{name: "int64 bounds", input: "9223372036854775807\n-9223372036854775808", want: []int64{9223372036854775807, -9223372036854775808}},
		{name: "not a number", input: "1\nabc\n3", wantLine: 2},
		{name: "blank line", input: "1\n\n3", wantLine: 2},
		{name: "float", input: "1.5", wantLine: 1},
		{name: "out of range", input: "1\n2\n9223372036854775808", wantLine: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq, err := ReadSequence(context.Background(), "test", strings.NewReader(tt.input))
			if tt.wantLine == 0 {
				assert.Nil(t, err)
				assert.Equal(t, tt.want, seq)

				return
			}

			assert.True(t, errors.Is(err, sentinel.ErrLoad))
			assert.True(t, seq == nil)

			var loadErr *LoadError
			assert.True(t, errors.As(err, &loadErr))
			assert.Equal(t, "test", loadErr.Source)
			assert.Equal(t, tt.wantLine, loadErr.Line)
		})
	}
}

func TestReadSequence_LineTooLong(t *testing.T) {
	input := "1\n" + strings.Repeat("1", 2<<20)

	_, err := ReadSequence(context.Background(), "long", strings.NewReader(input))
	assert.True(t, errors.Is(err, sentinel.ErrLoad))
}

func TestReadSequence_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	input := strings.Repeat("1\n", ctxCheckInterval+1)

	_, err := ReadSequence(ctx, "canceled", strings.NewReader(input))
	assert.True(t, errors.Is(err, context.Canceled))
	assert.True(t, errors.Is(err, sentinel.ErrLoad))
}

func TestLoadError_Message(t *testing.T) {
	err := &LoadError{Source: "10m.txt", Line: 3, Err: errors.New("boom")}
	assert.Equal(t, "load 10m.txt:3: boom", err.Error())

	err = &LoadError{Source: "10m.txt", Err: errors.New("boom")}
	assert.Equal(t, "load 10m.txt: boom", err.Error())
}

func TestFileLoader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "numbers.txt")

	err := os.WriteFile(path, []byte("3\n1\n2\n"), 0o600)
	assert.Nil(t, err)

	l := NewFileLoader(path)
	assert.Equal(t, path, l.Source())

	seq, err := l.Load(context.Background())
	assert.Nil(t, err)
	assert.Equal(t, []int64{3, 1, 2}, seq)

	_, err = NewFileLoader(filepath.Join(dir, "missing.txt")).Load(context.Background())
	assert.True(t, errors.Is(err, sentinel.ErrLoad))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestReaderLoader(t *testing.T) {
	l := NewReaderLoader("stdin", strings.NewReader("5\n-5\n"))
	assert.Equal(t, "stdin", l.Source())

	seq, err := l.Load(context.Background())
	assert.Nil(t, err)
	assert.Equal(t, []int64{5, -5}, seq)
}
