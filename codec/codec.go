// Package codec provides (de)serialization of dense matrices to []byte, for
// the memo store and for callers that move matrices across process
// boundaries. All codecs encode a {rows, cols, data} payload with row-major
// data and reject payloads whose dims disagree with the data length.
package codec

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Codec encodes/decodes dense matrices to []byte for storage.
type Codec interface {
	Encode(*mat.Dense) ([]byte, error)
	Decode([]byte) (*mat.Dense, error)
}

// payload is the serialized shape shared by all codecs.
type payload struct {
	Rows int       `json:"rows" cbor:"rows" msgpack:"rows"`
	Cols int       `json:"cols" cbor:"cols" msgpack:"cols"`
	Data []float64 `json:"data" cbor:"data" msgpack:"data"`
}

func toPayload(m *mat.Dense) payload {
	if m == nil {
		return payload{}
	}
	r, c := m.Dims()
	if r == 0 || c == 0 {
		return payload{}
	}
	data := make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		data = append(data, m.RawRowView(i)...)
	}
	return payload{Rows: r, Cols: c, Data: data}
}

func fromPayload(p payload) (*mat.Dense, error) {
	if p.Rows == 0 && p.Cols == 0 && len(p.Data) == 0 {
		return &mat.Dense{}, nil
	}
	if p.Rows <= 0 || p.Cols <= 0 || p.Rows*p.Cols != len(p.Data) {
		return nil, fmt.Errorf("codec: dims %dx%d disagree with %d elements", p.Rows, p.Cols, len(p.Data))
	}
	return mat.NewDense(p.Rows, p.Cols, p.Data), nil
}
