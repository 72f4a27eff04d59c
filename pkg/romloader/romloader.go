// Package romloader is the external collaborator that turns a file on
// disk into the flat byte vector internal/cartridge consumes: it knows
// about file extensions and archive formats, the core package never does
// (per §6, cartridge *file* parsing lives outside the core).
package romloader

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
)

// romExtensions are the file suffixes treated as an already-flat ROM
// image, read verbatim with no decompression step.
var romExtensions = map[string]bool{
	".gb":  true,
	".gbc": true,
	".bin": true,
}

// Load reads filename and returns the ROM bytes it contains, transparently
// decompressing .gz/.zip/.7z containers and picking the first entry whose
// name ends in .gb or .gbc (falling back to the archive's first entry if
// none match).
func Load(filename string) ([]byte, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("romloader: opening %s: %w", filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("romloader: reading %s: %w", filename, err)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if romExtensions[ext] {
		return data, nil
	}

	switch ext {
	case ".gz":
		return loadGzip(data)
	case ".zip":
		return loadZip(data)
	case ".7z":
		return load7z(data)
	default:
		return data, nil
	}
}

func loadGzip(data []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("romloader: opening gzip stream: %w", err)
	}
	defer r.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("romloader: decompressing gzip stream: %w", err)
	}
	return out, nil
}

func loadZip(data []byte) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("romloader: opening zip archive: %w", err)
	}
	if len(zr.File) == 0 {
		return nil, fmt.Errorf("romloader: zip archive is empty")
	}
	entry := pickROMEntry(zipNames(zr.File))
	rc, err := zr.File[entry].Open()
	if err != nil {
		return nil, fmt.Errorf("romloader: opening %s in zip archive: %w", zr.File[entry].Name, err)
	}
	defer rc.Close()
	out, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("romloader: reading %s from zip archive: %w", zr.File[entry].Name, err)
	}
	return out, nil
}

func load7z(data []byte) ([]byte, error) {
	zr, err := sevenzip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("romloader: opening 7z archive: %w", err)
	}
	if len(zr.File) == 0 {
		return nil, fmt.Errorf("romloader: 7z archive is empty")
	}
	names := make([]string, len(zr.File))
	for i, file := range zr.File {
		names[i] = file.Name
	}
	entry := pickROMEntry(names)
	rc, err := zr.File[entry].Open()
	if err != nil {
		return nil, fmt.Errorf("romloader: opening %s in 7z archive: %w", zr.File[entry].Name, err)
	}
	defer rc.Close()
	out, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("romloader: reading %s from 7z archive: %w", zr.File[entry].Name, err)
	}
	return out, nil
}

func zipNames(files []*zip.File) []string {
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.Name
	}
	return names
}

// pickROMEntry returns the index of the first name ending in .gb/.gbc, or
// 0 if none match.
func pickROMEntry(names []string) int {
	for i, name := range names {
		ext := strings.ToLower(filepath.Ext(name))
		if ext == ".gb" || ext == ".gbc" {
			return i
		}
	}
	return 0
}
