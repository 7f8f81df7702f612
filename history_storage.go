package brush

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

// Storage keeps full-canvas snapshots for the history manager.
// Implementations must be safe for concurrent use.
type Storage interface {
	// Save stores a copy of img and returns its identifier.
	Save(img *image.RGBA) (string, error)
	// Load copies the snapshot id into dst. It returns an error wrapping
	// ErrSnapshotMissing if the snapshot does not exist and ErrSnapshotSize
	// if its dimensions differ from dst.
	Load(id string, dst *image.RGBA) error
	// Delete removes a snapshot. Deleting a missing snapshot is not an error.
	Delete(id string) error
	// Close releases every snapshot.
	Close() error
}

// copyPix copies the pixels of src into a tightly packed buffer.
func copyPix(img *image.RGBA) []byte {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	out := make([]byte, w*h*4)
	for y := 0; y < h; y++ {
		i := img.PixOffset(img.Rect.Min.X, img.Rect.Min.Y+y)
		copy(out[y*w*4:(y+1)*w*4], img.Pix[i:i+w*4])
	}
	return out
}

// pastePix is the inverse of copyPix.
func pastePix(dst *image.RGBA, pix []byte) {
	w, h := dst.Rect.Dx(), dst.Rect.Dy()
	for y := 0; y < h; y++ {
		i := dst.PixOffset(dst.Rect.Min.X, dst.Rect.Min.Y+y)
		copy(dst.Pix[i:i+w*4], pix[y*w*4:(y+1)*w*4])
	}
}

type memSnapshot struct {
	w, h int
	pix  []byte
}

// MemoryStorage keeps snapshots in memory.
type MemoryStorage struct {
	mu     sync.Mutex
	snaps  map[string]memSnapshot
	closed bool
}

// NewMemoryStorage returns an empty in-memory snapshot store.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{snaps: make(map[string]memSnapshot)}
}

// Save implements Storage.
func (m *MemoryStorage) Save(img *image.RGBA) (string, error) {
	snap := memSnapshot{w: img.Rect.Dx(), h: img.Rect.Dy(), pix: copyPix(img)}
	id := uuid.NewString()

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return "", ErrStorageClosed
	}
	m.snaps[id] = snap
	return id, nil
}

// Load implements Storage.
func (m *MemoryStorage) Load(id string, dst *image.RGBA) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrStorageClosed
	}
	snap, ok := m.snaps[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrSnapshotMissing, id)
	}
	if snap.w != dst.Rect.Dx() || snap.h != dst.Rect.Dy() {
		return fmt.Errorf("%w: %s is %dx%d", ErrSnapshotSize, id, snap.w, snap.h)
	}
	pastePix(dst, snap.pix)
	return nil
}

// Delete implements Storage.
func (m *MemoryStorage) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.snaps, id)
	return nil
}

// Len returns the number of stored snapshots.
func (m *MemoryStorage) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.snaps)
}

// Close implements Storage.
func (m *MemoryStorage) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snaps = nil
	m.closed = true
	return nil
}

// snapshotMagic starts every snapshot file, followed by the width and height
// as little-endian uint32 and the tightly packed RGBA pixels.
var snapshotMagic = [4]byte{'B', 'R', 'S', 'H'}

// FileStorage keeps snapshots as files in a private temporary directory,
// removed on Close.
type FileStorage struct {
	mu     sync.Mutex
	dir    string
	closed bool
}

// NewFileStorage creates a snapshot directory under parent. An empty parent
// uses the system temporary directory.
func NewFileStorage(parent string) (*FileStorage, error) {
	dir, err := os.MkdirTemp(parent, "brush-history-*")
	if err != nil {
		return nil, fmt.Errorf("brush: create history dir: %w", err)
	}
	return &FileStorage{dir: dir}, nil
}

// Dir returns the snapshot directory.
func (s *FileStorage) Dir() string {
	return s.dir
}

func (s *FileStorage) path(id string) (string, error) {
	if _, err := uuid.Parse(id); err != nil {
		return "", fmt.Errorf("%w: invalid id %q", ErrSnapshotMissing, id)
	}
	return filepath.Join(s.dir, id+".snap"), nil
}

// Save implements Storage.
func (s *FileStorage) Save(img *image.RGBA) (id string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return "", ErrStorageClosed
	}

	id = uuid.NewString()
	p, _ := s.path(id)
	f, err := os.OpenFile(p, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600) //nolint:gosec // path built from a uuid
	if err != nil {
		return "", fmt.Errorf("brush: save snapshot: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("brush: save snapshot: %w", cerr)
		}
		if err != nil {
			_ = os.Remove(p)
			id = ""
		}
	}()

	w := bufio.NewWriter(f)
	header := struct {
		Magic         [4]byte
		Width, Height uint32
	}{snapshotMagic, uint32(img.Rect.Dx()), uint32(img.Rect.Dy())} //nolint:gosec // canvas dimensions fit in uint32
	if err := binary.Write(w, binary.LittleEndian, header); err != nil {
		return "", fmt.Errorf("brush: save snapshot: %w", err)
	}
	for y := img.Rect.Min.Y; y < img.Rect.Max.Y; y++ {
		i := img.PixOffset(img.Rect.Min.X, y)
		if _, err := w.Write(img.Pix[i : i+img.Rect.Dx()*4]); err != nil {
			return "", fmt.Errorf("brush: save snapshot: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return "", fmt.Errorf("brush: save snapshot: %w", err)
	}
	return id, nil
}

// Load implements Storage.
func (s *FileStorage) Load(id string, dst *image.RGBA) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStorageClosed
	}
	p, err := s.path(id)
	if err != nil {
		return err
	}
	f, err := os.Open(p) //nolint:gosec // path built from a uuid
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrSnapshotMissing, id)
	}
	if err != nil {
		return fmt.Errorf("brush: load snapshot: %w", err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	var header struct {
		Magic         [4]byte
		Width, Height uint32
	}
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("brush: load snapshot %s: %w", id, err)
	}
	if header.Magic != snapshotMagic {
		return fmt.Errorf("brush: load snapshot %s: bad header", id)
	}
	if int(header.Width) != dst.Rect.Dx() || int(header.Height) != dst.Rect.Dy() {
		return fmt.Errorf("%w: %s is %dx%d", ErrSnapshotSize, id, header.Width, header.Height)
	}
	for y := dst.Rect.Min.Y; y < dst.Rect.Max.Y; y++ {
		i := dst.PixOffset(dst.Rect.Min.X, y)
		if _, err := io.ReadFull(r, dst.Pix[i:i+dst.Rect.Dx()*4]); err != nil {
			return fmt.Errorf("brush: load snapshot %s: %w", id, err)
		}
	}
	return nil
}

// Delete implements Storage.
func (s *FileStorage) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.path(id)
	if err != nil {
		return nil //nolint:nilerr // ids that cannot exist are already deleted
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("brush: delete snapshot: %w", err)
	}
	return nil
}

// Close implements Storage. It removes the snapshot directory.
func (s *FileStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if err := os.RemoveAll(s.dir); err != nil {
		return fmt.Errorf("brush: remove history dir: %w", err)
	}
	return nil
}
