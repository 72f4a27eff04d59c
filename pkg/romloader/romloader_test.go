package romloader

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_FlatGBPassthrough(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "game.gb")
	want := []byte{0x00, 0xC3, 0x50, 0x01}
	require.NoError(t, os.WriteFile(path, want, 0o644))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoad_ZipPicksGBEntry(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "game.zip")

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	readme, err := zw.Create("readme.txt")
	require.NoError(t, err)
	_, err = readme.Write([]byte("not a rom"))
	require.NoError(t, err)
	rom, err := zw.Create("game.gb")
	require.NoError(t, err)
	want := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	_, err = rom.Write(want)
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestPickROMEntry_FallsBackToFirstWhenNoneMatch(t *testing.T) {
	assert.Equal(t, 0, pickROMEntry([]string{"readme.txt", "license.txt"}))
	assert.Equal(t, 1, pickROMEntry([]string{"readme.txt", "game.gbc"}))
}
