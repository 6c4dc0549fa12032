package bb

import "fmt"

// BootromSize is the exact length of the on-chip boot ROM image.
const BootromSize = 0x2000

// Offsets of the SK encryption key material inside the boot ROM data section.
const (
	skKeyOffset = 0x1F00
	skIvOffset  = 0x1F10
)

// BootromKeys extracts the (key, IV) pair the boot ROM uses to decrypt the
// secure kernel. The ROM image is consumed once and only for this.
func BootromKeys(rom []byte) (AesKey, AesIv, error) {
	if len(rom) != BootromSize {
		return AesKey{}, AesIv{}, fmt.Errorf("invalid bootrom: got 0x%X bytes, want 0x%X", len(rom), BootromSize)
	}

	var key AesKey
	var iv AesIv
	copy(key[:], rom[skKeyOffset:skKeyOffset+KeySize])
	copy(iv[:], rom[skIvOffset:skIvOffset+KeySize])

	return key, iv, nil
}
