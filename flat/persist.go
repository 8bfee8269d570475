package flat

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"

	"github.com/natmusissunny/legalrights"
)

// Persisted file names. The vector and chunk files form one logical unit.
const (
	VectorsFile = "index.vec"
	ChunksFile  = "chunks.json"
	StatsFile   = "stats.json"
)

// vectorsMagic identifies the vector file format.
var vectorsMagic = [4]byte{'L', 'R', 'F', 'V'}

const vectorsVersion uint32 = 1

// vectorsHeader precedes count*dim little-endian float32 values.
type vectorsHeader struct {
	Magic   [4]byte
	Version uint32
	Count   uint32
	Dim     uint32
}

// vectorsHeaderSize is the encoded size of vectorsHeader in bytes.
const vectorsHeaderSize = 16

// Save writes the vector, chunk and stats files to dir.
// Concurrent saves to the same dir are last-write-wins.
func (idx *Index) Save(dir string) error {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if !idx.state.Queryable() {
		return legalrights.Errorf(legalrights.ENOTREADY, "index is %s; nothing to save", idx.state)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	if err := writeFileAtomic(filepath.Join(dir, VectorsFile), func(w io.Writer) error {
		return writeVectors(w, idx.vectors, len(idx.chunks), idx.dim)
	}); err != nil {
		return fmt.Errorf("write vectors: %w", err)
	}

	if err := writeFileAtomic(filepath.Join(dir, ChunksFile), func(w io.Writer) error {
		return json.NewEncoder(w).Encode(idx.chunks)
	}); err != nil {
		return fmt.Errorf("write chunks: %w", err)
	}

	if err := writeFileAtomic(filepath.Join(dir, StatsFile), func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(idx.stats())
	}); err != nil {
		return fmt.Errorf("write stats: %w", err)
	}

	return nil
}

// Load restores the index from the vector and chunk files in dir. Nothing
// changes unless both files are present, well-formed and consistent.
func (idx *Index) Load(dir string) error {
	vectorsPath := filepath.Join(dir, VectorsFile)
	chunksPath := filepath.Join(dir, ChunksFile)

	for _, path := range []string{vectorsPath, chunksPath} {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return legalrights.Errorf(legalrights.ENOTFOUND, "index file %s not found; build the index first", path)
		} else if err != nil {
			return err
		}
	}

	vectors, count, dim, err := readVectorsFile(vectorsPath)
	if err != nil {
		return err
	}

	chunks, err := readChunksFile(chunksPath)
	if err != nil {
		return err
	}

	if len(chunks) != count {
		return legalrights.Errorf(legalrights.EINVALID, "index files disagree: %d vectors, %d chunks", count, len(chunks))
	}
	if want := idx.embedder.Dimension(); want > 0 && want != dim {
		return legalrights.Errorf(legalrights.EDIMENSION,
			"index has dimension %d but embedding model %q produces %d; rebuild the index", dim, idx.embedder.Model(), want)
	}

	for i, c := range chunks {
		c.Embedding = vectors[i*dim : (i+1)*dim : (i+1)*dim]
	}

	idx.mu.Lock()
	idx.dim = dim
	idx.vectors = vectors
	idx.chunks = chunks
	idx.state = legalrights.IndexLoaded
	idx.mu.Unlock()

	return nil
}

func writeVectors(w io.Writer, vectors []float32, count, dim int) error {
	bw := bufio.NewWriter(w)
	header := vectorsHeader{
		Magic:   vectorsMagic,
		Version: vectorsVersion,
		Count:   uint32(count),
		Dim:     uint32(dim),
	}
	if err := binary.Write(bw, binary.LittleEndian, header); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, vectors); err != nil {
		return err
	}
	return bw.Flush()
}

func readVectorsFile(path string) ([]float32, int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, 0, err
	}
	defer f.Close()

	r := bufio.NewReader(f)

	var header vectorsHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, 0, 0, legalrights.Errorf(legalrights.EINVALID, "read vector header: %v", err)
	}
	if header.Magic != vectorsMagic {
		return nil, 0, 0, legalrights.Errorf(legalrights.EINVALID, "%s is not a vector file", path)
	}
	if header.Version != vectorsVersion {
		return nil, 0, 0, legalrights.Errorf(legalrights.EINVALID, "unsupported vector file version %d", header.Version)
	}

	if header.Count > 0 && header.Dim == 0 {
		return nil, 0, 0, legalrights.Errorf(legalrights.EINVALID, "vector file has zero dimension")
	}

	// The header must describe exactly the bytes that follow it.
	values := uint64(header.Count) * uint64(header.Dim)
	if values > (math.MaxInt64-vectorsHeaderSize)/4 {
		return nil, 0, 0, legalrights.Errorf(legalrights.EINVALID, "vector file header claims %d x %d values", header.Count, header.Dim)
	}
	info, err := f.Stat()
	if err != nil {
		return nil, 0, 0, err
	}
	if want := vectorsHeaderSize + 4*values; uint64(info.Size()) != want {
		return nil, 0, 0, legalrights.Errorf(legalrights.EINVALID,
			"vector file is %d bytes, header describes %d", info.Size(), want)
	}

	count, dim := int(header.Count), int(header.Dim)

	vectors := make([]float32, count*dim)
	if err := binary.Read(r, binary.LittleEndian, vectors); err != nil {
		return nil, 0, 0, legalrights.Errorf(legalrights.EINVALID, "read vectors: %v", err)
	}
	if _, err := r.ReadByte(); err != io.EOF {
		return nil, 0, 0, legalrights.Errorf(legalrights.EINVALID, "trailing data in %s", path)
	}

	return vectors, count, dim, nil
}

func readChunksFile(path string) ([]*legalrights.Chunk, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var chunks []*legalrights.Chunk
	if err := json.Unmarshal(data, &chunks); err != nil {
		return nil, legalrights.Errorf(legalrights.EINVALID, "parse %s: %v", path, err)
	}
	return chunks, nil
}

// writeFileAtomic writes path through a temporary file and a rename.
func writeFileAtomic(path string, write func(io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
