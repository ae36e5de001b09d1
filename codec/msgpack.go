package codec

import (
	"github.com/vmihailenco/msgpack/v5"
	"gonum.org/v1/gonum/mat"
)

// Msgpack serializes matrices using vmihailenco/msgpack/v5.
// The zero value is ready to use.
type Msgpack struct{}

var _ Codec = Msgpack{}

func (Msgpack) Encode(m *mat.Dense) ([]byte, error) { return msgpack.Marshal(toPayload(m)) }
func (Msgpack) Decode(b []byte) (*mat.Dense, error) {
	var p payload
	if err := msgpack.Unmarshal(b, &p); err != nil {
		return nil, err
	}
	return fromPayload(p)
}
