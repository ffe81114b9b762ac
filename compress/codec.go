package compress

import (
	"slices"

	"github.com/cockroachdb/errors"
)

// Compressor packs a payload for export.
type Compressor interface {
	// Compress returns the packed form of data. The result is newly
	// allocated unless the codec is a pass-through; the input is never
	// modified.
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a payload packed by the matching Compressor.
type Decompressor interface {
	// Decompress returns the original bytes. It validates the packed
	// format and fails on corrupted or mismatched input.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions of one algorithm.
type Codec interface {
	Compressor
	Decompressor
}

var builtinCodecs = map[string]Codec{
	"none": NewNoOpCompressor(),
	"zstd": NewZstdCompressor(),
	"s2":   NewS2Compressor(),
	"lz4":  NewLZ4Compressor(),
}

// ByName returns the built-in codec registered under name.
func ByName(name string) (Codec, error) {
	if codec, ok := builtinCodecs[name]; ok {
		return codec, nil
	}

	return nil, errors.Newf("unknown codec %q (have %v)", name, Names())
}

// Names lists the built-in codec names, sorted.
func Names() []string {
	names := make([]string, 0, len(builtinCodecs))
	for name := range builtinCodecs {
		names = append(names, name)
	}
	slices.Sort(names)

	return names
}
