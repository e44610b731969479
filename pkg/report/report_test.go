package report

import (
	"bytes"
	"errors"
	"testing"

	"github.com/longbridgeapp/assert"

	"github.com/hyp3rd/seqstats/internal/libs/serializer"
	"github.com/hyp3rd/seqstats/internal/sentinel"
	"github.com/hyp3rd/seqstats/types"
)

func result() *types.Result {
	return &types.Result{
		Count:             5,
		Min:               1,
		Max:               3,
		Median:            2,
		MedianPolicy:      types.MedianExact,
		Mean:              1.8,
		LongestIncreasing: types.Run{Direction: types.Increasing, Length: 3, Values: []int64{1, 2, 3}},
		LongestDecreasing: types.Run{Direction: types.Decreasing, Start: 2, Length: 3, Values: []int64{3, 2, 1}},
		Digest:            "abc",
	}
}

func TestFormatText(t *testing.T) {
	want := "Min: 1\n" +
		"Max: 3\n" +
		"Median: 2\n" +
		"Mean: 1.8\n" +
		"Longest increasing sequence: [1, 2, 3]\n" +
		"Longest decreasing sequence: [3, 2, 1]\n"

	assert.Equal(t, want, FormatText(result()))
}

func TestFormatText_EmptyRuns(t *testing.T) {
	res := &types.Result{
		LongestIncreasing: types.Run{Values: []int64{}},
	}

	out := FormatText(res)
	assert.True(t, bytes.Contains([]byte(out), []byte("Longest increasing sequence: []\n")))
	assert.True(t, bytes.Contains([]byte(out), []byte("Longest decreasing sequence: []\n")))
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "2.5", FormatNumber(2.5))
	assert.Equal(t, "2", FormatNumber(2))
	assert.Equal(t, "-0.5", FormatNumber(-0.5))
	assert.Equal(t, "9223372036854775808", FormatNumber(9223372036854775807))
}

func TestWrite(t *testing.T) {
	var text bytes.Buffer

	err := Write(&text, result(), "")
	assert.Nil(t, err)
	assert.Equal(t, FormatText(result()), text.String())

	for _, format := range []string{serializer.JSON, serializer.Msgpack, serializer.CBOR} {
		var buf bytes.Buffer

		err := Write(&buf, result(), format)
		assert.Nil(t, err)

		s, err := serializer.New(format)
		assert.Nil(t, err)

		var got types.Result

		err = s.Unmarshal(buf.Bytes(), &got)
		assert.Nil(t, err)
		assert.Equal(t, *result(), got)
	}
}

func TestWrite_Errors(t *testing.T) {
	var buf bytes.Buffer

	err := Write(&buf, result(), "yaml")
	assert.True(t, errors.Is(err, sentinel.ErrFormatNotFound))

	err = Write(&buf, nil, "text")
	assert.True(t, errors.Is(err, sentinel.ErrParamCannotBeEmpty))
	assert.Equal(t, 0, buf.Len())
}

func TestReporter_Formats(t *testing.T) {
	assert.Equal(t, []string{Text, serializer.CBOR, serializer.JSON, serializer.Msgpack}, New(nil).Formats())
}
