package keys

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"
	"gonum.org/v1/gonum/mat"
)

// Fingerprint returns a deterministic 64-bit digest of a matrix: dimensions
// followed by the raw IEEE-754 bits of each element in row-major order,
// hashed with xxhash. Bit-identical matrices always collide; matrices that
// differ in any bit (including -0 vs +0 and NaN payloads) do not.
func Fingerprint(a mat.Matrix) uint64 {
	r, c := a.Dims()

	d := xxhash.New()
	var u8 [8]byte

	binary.BigEndian.PutUint64(u8[:], uint64(r))
	_, _ = d.Write(u8[:])
	binary.BigEndian.PutUint64(u8[:], uint64(c))
	_, _ = d.Write(u8[:])

	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			binary.BigEndian.PutUint64(u8[:], math.Float64bits(a.At(i, j)))
			_, _ = d.Write(u8[:])
		}
	}
	return d.Sum64()
}

// MemoKey returns the storage key for an inverse: "inv:<ns>:<r>x<c>:<fp hex>".
// Dims are spelled out so operators can eyeball key distributions per shape.
func MemoKey(ns string, rows, cols int, fp uint64) string {
	return fmt.Sprintf("inv:%s:%dx%d:%016x", ns, rows, cols, fp)
}
