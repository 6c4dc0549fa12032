package kio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamNames(t *testing.T) {
	assert.Equal(t, "stdin", Input("-").String())
	assert.Equal(t, "stdout", Output("-").String())
	assert.Equal(t, "some/file.bin", Input("some/file.bin").String())
	assert.Equal(t, "out.sksa", Output("out.sksa").String())
}

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blob.bin")
	want := []byte{0xDE, 0xAD, 0xBE, 0xEF}

	require.NoError(t, Output(path).Write(want))

	got, err := Input(path).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestReadErrorNamesSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.bin")

	_, err := Input(path).ReadAll()
	require.Error(t, err)
	assert.Contains(t, err.Error(), path, "error must name the failing source")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestUnsupportedDirections(t *testing.T) {
	_, err := Output("-").ReadAll()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stdout")

	err = Input("-").Write(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stdin")
}
