package bb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ParseKeyTest struct {
	Input   string
	WantKey AesKey
	WantErr bool
}

var parseKeyTests = []ParseKeyTest{
	{
		Input:   "000102030405060708090a0b0c0d0e0f",
		WantKey: AesKey{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
	},
	{
		Input:   "00010203",
		WantErr: true,
	},
	{
		Input:   "zz0102030405060708090a0b0c0d0e0f",
		WantErr: true,
	},
	{
		Input:   "000102030405060708090a0b0c0d0e0f00",
		WantErr: true,
	},
}

func TestParseKey(t *testing.T) {
	for _, test := range parseKeyTests {
		key, err := ParseKey(test.Input)
		if test.WantErr {
			assert.Error(t, err, "malformed key text must be rejected")
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, test.WantKey, key, "keys must match")
	}
}

func TestParseVirage2(t *testing.T) {
	buf := make([]byte, Virage2Size)
	buf[v2BbIdOffset+3] = 0x2A
	for i := 0; i < KeySize; i++ {
		buf[v2BootAppKeyOffset+i] = byte(i + 1)
	}

	v, err := ParseVirage2(buf)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x2A), v.BbId)
	assert.Equal(t, AesKey{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}, v.BootAppKey)
}

func TestParseVirage2RejectsWrongSize(t *testing.T) {
	_, err := ParseVirage2(make([]byte, Virage2Size-1))
	assert.Error(t, err)

	_, err = ParseVirage2(make([]byte, Virage2Size+1))
	assert.Error(t, err)
}

func TestBootromKeys(t *testing.T) {
	rom := make([]byte, BootromSize)
	for i := 0; i < KeySize; i++ {
		rom[skKeyOffset+i] = 0xA0 + byte(i)
		rom[skIvOffset+i] = 0xB0 + byte(i)
	}

	key, iv, err := BootromKeys(rom)
	require.NoError(t, err)
	assert.Equal(t, byte(0xA0), key[0])
	assert.Equal(t, byte(0xAF), key[15])
	assert.Equal(t, byte(0xB0), iv[0])
	assert.Equal(t, byte(0xBF), iv[15])
}

func TestBootromKeysRejectsWrongSize(t *testing.T) {
	_, _, err := BootromKeys(make([]byte, BootromSize/2))
	assert.Error(t, err)
}
