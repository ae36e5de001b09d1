package codec

import (
	"encoding/json"

	"gonum.org/v1/gonum/mat"
)

type JSON struct{}

var _ Codec = JSON{}

func (JSON) Encode(m *mat.Dense) ([]byte, error) { return json.Marshal(toPayload(m)) }
func (JSON) Decode(b []byte) (*mat.Dense, error) {
	var p payload
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, err
	}
	return fromPayload(p)
}
