// Package report renders a types.Result, either as the six-line text summary or
// through one of the serializer encodings.
package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/seqstats/internal/constants"
	"github.com/hyp3rd/seqstats/internal/libs/serializer"
	"github.com/hyp3rd/seqstats/internal/sentinel"
	"github.com/hyp3rd/seqstats/types"
)

// Text is the name of the human readable format.
const Text = "text"

// Reporter writes results in a named format.
type Reporter struct {
	serializers *serializer.Registry
}

// New returns a reporter knowing the text format and every serializer of registry.
// A nil registry means the default serializers.
func New(registry *serializer.Registry) *Reporter {
	if registry == nil {
		registry = serializer.NewSerializerRegistry()
	}

	return &Reporter{serializers: registry}
}

// Formats returns the names Write accepts.
func (r *Reporter) Formats() []string {
	return append([]string{Text}, r.serializers.Names()...)
}

// Write renders res to w. An empty format means text.
func (r *Reporter) Write(w io.Writer, res *types.Result, format string) error {
	if res == nil {
		return ewrap.Wrap(sentinel.ErrParamCannotBeEmpty, "result")
	}

	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = constants.DefaultFormat
	}

	if format == Text {
		_, err := io.WriteString(w, FormatText(res))
		if err != nil {
			return ewrap.Wrap(err, "write report")
		}

		return nil
	}

	s, err := r.serializers.New(format)
	if err != nil {
		return ewrap.Wrap(sentinel.ErrFormatNotFound, format)
	}

	data, err := s.Marshal(res)
	if err != nil {
		return err
	}

	_, err = w.Write(data)
	if err != nil {
		return ewrap.Wrap(err, "write report")
	}

	return nil
}

// Write renders res to w with the default serializers.
func Write(w io.Writer, res *types.Result, format string) error {
	return New(nil).Write(w, res, format)
}

// FormatText returns the fixed six-line summary:
//
//	Min: 1
//	Max: 3
//	Median: 2
//	Mean: 1.8
//	Longest increasing sequence: [1, 2, 3]
//	Longest decreasing sequence: [3, 2, 1]
func FormatText(res *types.Result) string {
	var b strings.Builder

	b.WriteString("Min: ")
	b.WriteString(strconv.FormatInt(res.Min, 10))
	b.WriteString("\nMax: ")
	b.WriteString(strconv.FormatInt(res.Max, 10))
	b.WriteString("\nMedian: ")
	b.WriteString(FormatNumber(res.Median))
	b.WriteString("\nMean: ")
	b.WriteString(FormatNumber(res.Mean))
	b.WriteString("\nLongest increasing sequence: ")
	writeValues(&b, res.LongestIncreasing.Values)
	b.WriteString("\nLongest decreasing sequence: ")
	writeValues(&b, res.LongestDecreasing.Values)
	b.WriteByte('\n')

	return b.String()
}

// FormatNumber prints v in its shortest round-trip form: 2.5, 2, -0.5.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func writeValues(b *strings.Builder, values []int64) {
	b.WriteByte('[')

	for i, v := range values {
		if i > 0 {
			b.WriteString(", ")
		}

		b.WriteString(strconv.FormatInt(v, 10))
	}

	b.WriteByte(']')
}
