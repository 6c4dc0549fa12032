package bb

import (
	"encoding/binary"
	"fmt"
)

// Virage2Size is the exact length of a Virage2 dump.
const Virage2Size = 0x100

// Virage2 field offsets. Only the fields the build actually consumes are
// surfaced; the rest of the descriptor (checksum adjust, ROM patch, ECC key
// pair, per-app keys) is carried opaquely.
const (
	v2BbIdOffset       = 0x88
	v2BootAppKeyOffset = 0xAC
)

// Virage2 is the parsed per-console root-of-trust descriptor. Immutable once
// read.
type Virage2 struct {
	// BbId is the console's unique identifier.
	BbId uint32

	// BootAppKey protects the title key inside every CMD head built for this
	// console.
	BootAppKey AesKey
}

// ParseVirage2 reads the fields of interest out of a raw Virage2 dump.
func ParseVirage2(buf []byte) (*Virage2, error) {
	if len(buf) != Virage2Size {
		return nil, fmt.Errorf("invalid Virage2 dump: got 0x%X bytes, want 0x%X", len(buf), Virage2Size)
	}

	v := &Virage2{
		BbId: binary.BigEndian.Uint32(buf[v2BbIdOffset:]),
	}
	copy(v.BootAppKey[:], buf[v2BootAppKeyOffset:v2BootAppKeyOffset+KeySize])

	return v, nil
}
