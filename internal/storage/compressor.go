package storage

import (
	"fmt"
	"weddingsite/internal/storage/interfaces"

	"github.com/klauspost/compress/zstd"
)

// ZstdCompression is the codec of document backups. Snapshots are small JSON
// documents written once per save and read only by the restore command, so
// the encoder trades speed for ratio.
type ZstdCompression struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// Compress encodes one backup snapshot.
func (z *ZstdCompression) Compress(doc []byte) ([]byte, error) {
	return z.encoder.EncodeAll(doc, make([]byte, 0, len(doc)/4)), nil
}

// Decompress decodes a snapshot written by Compress. Anything else is an error.
func (z *ZstdCompression) Decompress(snapshot []byte) ([]byte, error) {
	doc, err := z.decoder.DecodeAll(snapshot, nil)
	if err != nil {
		return nil, fmt.Errorf("decode backup snapshot: %w", err)
	}
	return doc, nil
}

func NewZstdCompressor() (interfaces.CompressorInterface, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return nil, fmt.Errorf("failed to create backup encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, fmt.Errorf("failed to create backup decoder: %w", err)
	}
	return &ZstdCompression{encoder: encoder, decoder: decoder}, nil
}
