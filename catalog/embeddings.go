package catalog

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Embedding matrix artifact layout: a fixed header followed by row-major
// little-endian float32 data.
//
//	[4]byte magic "RGEM"
//	uint8   version (currently 1)
//	uint32  dimension
//	uint32  row count
//	float32[rows*dim] data
const (
	embeddingMagic   = "RGEM"
	embeddingVersion = 1
)

// Matrix is a decoded embedding matrix artifact.
type Matrix struct {
	Dim  int
	Rows int
	Data []float32 // row-major, Rows*Dim
}

// ReadMatrix decodes an embedding matrix artifact.
func ReadMatrix(r io.Reader) (*Matrix, error) {
	br := bufio.NewReaderSize(r, 256*1024)

	var magic [4]byte
	if _, err := io.ReadFull(br, magic[:]); err != nil {
		return nil, fmt.Errorf("catalog: read embedding header: %w", err)
	}
	if string(magic[:]) != embeddingMagic {
		return nil, fmt.Errorf("catalog: bad embedding magic %q", magic[:])
	}

	version, err := br.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("catalog: read embedding version: %w", err)
	}
	if version != embeddingVersion {
		return nil, fmt.Errorf("catalog: unsupported embedding version %d", version)
	}

	var dim, rows uint32
	if err := binary.Read(br, binary.LittleEndian, &dim); err != nil {
		return nil, fmt.Errorf("catalog: read embedding dimension: %w", err)
	}
	if err := binary.Read(br, binary.LittleEndian, &rows); err != nil {
		return nil, fmt.Errorf("catalog: read embedding row count: %w", err)
	}
	if dim == 0 {
		return nil, fmt.Errorf("catalog: embedding dimension is zero")
	}

	data := make([]float32, int(dim)*int(rows))
	buf := make([]byte, 4)
	for i := range data {
		if _, err := io.ReadFull(br, buf); err != nil {
			return nil, fmt.Errorf("catalog: embedding matrix truncated at element %d: %w", i, err)
		}
		data[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf))
	}

	return &Matrix{Dim: int(dim), Rows: int(rows), Data: data}, nil
}

// WriteMatrix encodes an embedding matrix artifact.
// All vectors must share the same length.
func WriteMatrix(w io.Writer, vectors [][]float32) error {
	if len(vectors) == 0 {
		return fmt.Errorf("catalog: no vectors to write")
	}
	dim := len(vectors[0])
	if dim == 0 {
		return fmt.Errorf("catalog: empty vector at row 0")
	}

	bw := bufio.NewWriterSize(w, 256*1024)
	if _, err := bw.WriteString(embeddingMagic); err != nil {
		return err
	}
	if err := bw.WriteByte(embeddingVersion); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(dim)); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(len(vectors))); err != nil {
		return err
	}

	buf := make([]byte, 4)
	for row, v := range vectors {
		if len(v) != dim {
			return fmt.Errorf("catalog: vector at row %d has dimension %d, want %d", row, len(v), dim)
		}
		for _, f := range v {
			binary.LittleEndian.PutUint32(buf, math.Float32bits(f))
			if _, err := bw.Write(buf); err != nil {
				return err
			}
		}
	}

	return bw.Flush()
}
