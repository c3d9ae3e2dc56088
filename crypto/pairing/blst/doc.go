// Package blst implements pairing.Curve for BLS12-381 on top of the
// supranational/blst C library. It is only compiled with the "blst" build
// tag because it requires cgo:
//
//	go test -tags blst ./crypto/pairing/blst/
//
// Scalars are shared with the gnark-crypto backend (both curves use the same
// Fr), so keys generated by one backend can be loaded by the other and the
// compressed point encodings are byte-for-byte compatible.
package blst
