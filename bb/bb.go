// Package bb holds the platform-side types and constants of the BB secure boot
// chain: fixed-size AES key material, the Virage2 root-of-trust descriptor, boot
// ROM key extraction and the per-application CMD head.
package bb

import (
	"encoding/hex"
	"fmt"
)

// BlockSize is the storage block granularity of an SKSA image. Every section
// (SK excepted, which is a fixed four blocks) is padded out to a whole number
// of these blocks before encryption.
const BlockSize = 16 * 1024

// KeySize is the length of every AES key and IV in the boot chain.
const KeySize = 16

type AesKey [KeySize]byte

type AesIv [KeySize]byte

// ParseKey decodes a 32-hex-character string into an AesKey. Key material of
// any other length is rejected here, at the text boundary, so the pipeline
// never sees a malformed key.
func ParseKey(s string) (AesKey, error) {
	var key AesKey
	if err := decodeFixed(s, key[:]); err != nil {
		return AesKey{}, err
	}
	return key, nil
}

// ParseIv decodes a 32-hex-character string into an AesIv.
func ParseIv(s string) (AesIv, error) {
	var iv AesIv
	if err := decodeFixed(s, iv[:]); err != nil {
		return AesIv{}, err
	}
	return iv, nil
}

func decodeFixed(s string, dst []byte) error {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return fmt.Errorf("invalid hex string: %v", err)
	}
	if len(raw) != len(dst) {
		return fmt.Errorf("got %d bytes, want %d", len(raw), len(dst))
	}
	copy(dst, raw)
	return nil
}
