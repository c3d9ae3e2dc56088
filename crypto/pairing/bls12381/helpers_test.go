package bls12381

import (
	"encoding/hex"
	"io"
)

func hexString(b []byte) string { return hex.EncodeToString(b) }

type shortReader struct{}

func (shortReader) Read(p []byte) (int, error) {
	if len(p) > 8 {
		p = p[:8]
	}
	return len(p), io.EOF
}
