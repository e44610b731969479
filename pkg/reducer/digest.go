package reducer

import (
	"encoding/binary"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// digestBatch is the number of values encoded per hash write.
const digestBatch = 512

// Digest returns the xxhash64 of seq encoded as little-endian int64 values, in hex.
// Two runs over the same data produce the same digest; the digest of an empty
// sequence is the hash of no bytes.
func Digest(seq []int64) string {
	h := xxhash.New()
	buf := make([]byte, 0, digestBatch*8)

	for len(seq) > 0 {
		n := min(len(seq), digestBatch)

		buf = buf[:0]
		for _, v := range seq[:n] {
			buf = binary.LittleEndian.AppendUint64(buf, uint64(v))
		}

		_, _ = h.Write(buf)
		seq = seq[n:]
	}

	return strconv.FormatUint(h.Sum64(), 16)
}
