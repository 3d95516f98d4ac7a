package vector

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
)

// snapshotMagic marks the file as a Kasane vector snapshot.
const snapshotMagic = uint32(0x4b534e50) // "KSNP"

// Save writes the store contents to path. Directory is created if needed.
// Format (little-endian): magic (4), dimensions (4), count (4), then per
// vector: idLen (4), id bytes, vector (dimensions*4 bytes).
func (s *Store) Save(path string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot file: %w", err)
	}
	defer f.Close()

	for _, v := range []uint32{snapshotMagic, uint32(s.dimensions), uint32(len(s.ids))} {
		if err := binary.Write(f, binary.LittleEndian, v); err != nil {
			return fmt.Errorf("write snapshot header: %w", err)
		}
	}
	for i, id := range s.ids {
		idBytes := []byte(id)
		if err := binary.Write(f, binary.LittleEndian, uint32(len(idBytes))); err != nil {
			return fmt.Errorf("write id len: %w", err)
		}
		if _, err := f.Write(idBytes); err != nil {
			return fmt.Errorf("write id: %w", err)
		}
		if _, err := f.Write(float32SliceToBytes(s.vectors[i])); err != nil {
			return fmt.Errorf("write vector: %w", err)
		}
	}
	return nil
}

// Load replaces the store contents with the snapshot at path. A missing,
// unreadable, or structurally invalid snapshot fails with ErrSnapshot and
// leaves the store unchanged: the file is decoded fully before the swap, so a
// truncated snapshot can never publish a half-loaded store.
func (s *Store) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: open %s: %v", ErrSnapshot, path, err)
	}
	defer f.Close()

	var magic, dim, n uint32
	for _, p := range []*uint32{&magic, &dim, &n} {
		if err := binary.Read(f, binary.LittleEndian, p); err != nil {
			return fmt.Errorf("%w: read header: %v", ErrSnapshot, err)
		}
	}
	if magic != snapshotMagic {
		return fmt.Errorf("%w: bad magic %#x", ErrSnapshot, magic)
	}
	if dim == 0 {
		return fmt.Errorf("%w: zero dimensionality", ErrSnapshot)
	}

	ids := make([]string, 0, n)
	vectors := make([][]float32, 0, n)
	vecBuf := make([]byte, int(dim)*4)
	for i := uint32(0); i < n; i++ {
		var idLen uint32
		if err := binary.Read(f, binary.LittleEndian, &idLen); err != nil {
			return fmt.Errorf("%w: read id len: %v", ErrSnapshot, err)
		}
		idBytes := make([]byte, idLen)
		if _, err := io.ReadFull(f, idBytes); err != nil {
			return fmt.Errorf("%w: read id: %v", ErrSnapshot, err)
		}
		if _, err := io.ReadFull(f, vecBuf); err != nil {
			return fmt.Errorf("%w: read vector: %v", ErrSnapshot, err)
		}
		ids = append(ids, string(idBytes))
		vectors = append(vectors, bytesToFloat32Slice(vecBuf))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.dimensions = int(dim)
	s.ids = ids
	s.vectors = vectors
	return nil
}

func float32SliceToBytes(s []float32) []byte {
	const size = 4
	out := make([]byte, len(s)*size)
	for i, v := range s {
		binary.LittleEndian.PutUint32(out[i*size:(i+1)*size], math.Float32bits(v))
	}
	return out
}

func bytesToFloat32Slice(b []byte) []float32 {
	const size = 4
	out := make([]float32, len(b)/size)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*size : (i+1)*size]))
	}
	return out
}
