// Package compress provides the codecs the export tooling uses to pack
// pixel payloads pulled out of containers.
//
// Containers themselves must hold uncompressed pixels (compressed
// subblocks are rejected at load), so these codecs never run on the read
// path. They exist for what leaves the library: czitool dump output and
// callers archiving cell payloads.
//
// Built-in codecs, addressable by name through ByName:
//
//	none   pass-through, byte-identical export
//	zstd   Zstandard frames, best ratio
//	s2     S2 blocks, fastest
//	lz4    LZ4 frames, fast with moderate ratio
//
// The zstd and lz4 outputs are standard frames, decodable by the
// reference command-line tools.
//
// All codecs are stateless values, safe for concurrent use; zstd shares
// pooled encoder and decoder instances across calls. Building with the
// gozstd tag replaces the pure-Go Zstandard implementation with the cgo
// bindings.
package compress
