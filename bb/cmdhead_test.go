package bb

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bbfw/makesksa/krypto/aescbc"
)

// Encoded field offsets, pinned so layout drift fails loudly.
const (
	offSize        = 0x0C
	offCommonCmdIv = 0x14
	offIv          = 0x38
	offContentId   = 0x98
	offKey         = 0x9C
	offSign        = 0xAC
)

func testHead(t *testing.T) (*CmdHead, AesKey, AesIv, AesKey, AesIv) {
	key, err := ParseKey("101112131415161718191a1b1c1d1e1f")
	require.NoError(t, err)
	iv, err := ParseIv("202122232425262728292a2b2c2d2e2f")
	require.NoError(t, err)
	bootAppKey, err := ParseKey("303132333435363738393a3b3c3d3e3f")
	require.NoError(t, err)
	keyIv, err := ParseIv("404142434445464748494a4b4c4d4e4f")
	require.NoError(t, err)

	cmd, err := NewUnsignedCmdHead(key, iv, bootAppKey, keyIv, 0x8000, 0x1234)
	require.NoError(t, err)

	return cmd, key, iv, bootAppKey, keyIv
}

func TestCmdHeadEncodedLayout(t *testing.T) {
	cmd, key, iv, bootAppKey, keyIv := testHead(t)

	buf, err := cmd.ToBuf()
	require.NoError(t, err)
	require.Len(t, buf, CmdHeadSize)

	assert.Equal(t, uint32(0x8000), binary.BigEndian.Uint32(buf[offSize:]), "declared size must match")
	assert.Equal(t, uint32(0x1234), binary.BigEndian.Uint32(buf[offContentId:]), "content ID must match")
	assert.Equal(t, keyIv[:], buf[offCommonCmdIv:offCommonCmdIv+KeySize])
	assert.Equal(t, iv[:], buf[offIv:offIv+KeySize])

	// The stored title key must decrypt back to the payload key under the
	// console's boot app key.
	plainKey, err := aescbc.Decrypt(buf[offKey:offKey+KeySize], bootAppKey[:], keyIv[:])
	require.NoError(t, err)
	assert.Equal(t, key[:], plainKey, "title key must be recoverable with the boot app key")

	// Unsigned head: the signature region stays zero.
	assert.Equal(t, make([]byte, 256), buf[offSign:offSign+256])
}

func TestCmdHeadDeterministic(t *testing.T) {
	first, _, _, _, _ := testHead(t)
	second, _, _, _, _ := testHead(t)

	a, err := first.ToBuf()
	require.NoError(t, err)
	b, err := second.ToBuf()
	require.NoError(t, err)

	assert.Equal(t, a, b, "identical inputs must encode identically")
}
