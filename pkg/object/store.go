package object

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// ErrNotFound is returned when no object with the requested digest and
// type exists in a namespace.
var ErrNotFound = errors.New("object not found")

// Store is a content-addressed object store with one directory per
// namespace and a 2-character fan-out layout inside each:
// objects/<namespace>/ab/cdef0123...
type Store struct {
	root     string
	compress bool
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithCompression enables or disables zstd compression of newly written
// objects. Reads handle both forms regardless of this setting.
func WithCompression(enabled bool) StoreOption {
	return func(s *Store) { s.compress = enabled }
}

// NewStore creates a Store rooted at the given directory. Namespace
// directories are created lazily on first write.
func NewStore(root string, opts ...StoreOption) *Store {
	s := &Store{root: root, compress: true}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// objectPath returns the filesystem path for a given hash in ns.
func (s *Store) objectPath(ns Namespace, h Hash) string {
	return filepath.Join(s.root, "objects", string(ns), string(h[:2]), string(h[2:]))
}

func validHash(h Hash) error {
	if !h.IsFull() {
		return fmt.Errorf("invalid object hash %q", h)
	}
	return nil
}

// Has reports whether ns contains an object with the given hash.
func (s *Store) Has(ns Namespace, h Hash) bool {
	if validHash(h) != nil {
		return false
	}
	_, err := os.Stat(s.objectPath(ns, h))
	return err == nil
}

// Write stores payload under h in ns. The on-disk format is
// "type len\0payload", optionally zstd-compressed. Writing an existing
// digest is a no-op. Writes are atomic: data is written to a temp file and
// then renamed into place.
func (s *Store) Write(ns Namespace, objType ObjectType, h Hash, payload []byte) error {
	if err := validHash(h); err != nil {
		return fmt.Errorf("object write: %w", err)
	}

	// Fast path: already exists.
	if s.Has(ns, h) {
		return nil
	}

	envelope := fmt.Sprintf("%s %d\x00", objType, len(payload))
	raw := append([]byte(envelope), payload...)
	if s.compress {
		compressed, err := compressZstd(raw)
		if err != nil {
			return fmt.Errorf("object write compress: %w", err)
		}
		raw = compressed
	}

	dir := filepath.Dir(s.objectPath(ns, h))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("object write mkdir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("object write tmpfile: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("object write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("object write close: %w", err)
	}

	if err := os.Rename(tmpName, s.objectPath(ns, h)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("object write rename: %w", err)
	}
	return nil
}

// Read retrieves an object by hash from ns, returning its type and payload.
func (s *Store) Read(ns Namespace, h Hash) (ObjectType, []byte, error) {
	if err := validHash(h); err != nil {
		return "", nil, fmt.Errorf("object read: %w: %w", ErrNotFound, err)
	}
	raw, err := os.ReadFile(s.objectPath(ns, h))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil, fmt.Errorf("object read %s/%s: %w", ns, h, ErrNotFound)
		}
		return "", nil, fmt.Errorf("object read %s/%s: %w", ns, h, err)
	}
	if isZstdFrame(raw) {
		raw, err = decompressZstd(raw)
		if err != nil {
			return "", nil, fmt.Errorf("object read %s/%s: decompress: %w", ns, h, err)
		}
	}

	// Parse envelope: "type len\0payload"
	nulIdx := bytes.IndexByte(raw, 0)
	if nulIdx < 0 {
		return "", nil, fmt.Errorf("object read %s: invalid format (no NUL)", h)
	}
	header := string(raw[:nulIdx])
	payload := raw[nulIdx+1:]

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return "", nil, fmt.Errorf("object read %s: invalid header %q", h, header)
	}
	objType := ObjectType(parts[0])
	length, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", nil, fmt.Errorf("object read %s: invalid length %q: %w", h, parts[1], err)
	}
	if len(payload) != length {
		return "", nil, fmt.Errorf("object read %s: length mismatch (header=%d, actual=%d)", h, length, len(payload))
	}

	return objType, payload, nil
}

// Delete removes an object from the staging namespace. Committed
// namespaces are immutable and refuse deletion.
func (s *Store) Delete(ns Namespace, h Hash) error {
	if ns != NamespaceStaging {
		return fmt.Errorf("object delete %s: namespace %q is immutable", h, ns)
	}
	if err := validHash(h); err != nil {
		return fmt.Errorf("object delete: %w", err)
	}
	err := os.Remove(s.objectPath(ns, h))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("object delete %s: %w", h, err)
	}
	return nil
}

// Promote moves a staged snapshot into the committed blob namespace and
// deletes the staging copy. Promoting a digest that is already committed
// only removes the staging copy.
func (s *Store) Promote(h Hash) error {
	if !s.Has(NamespaceBlobs, h) {
		objType, payload, err := s.Read(NamespaceStaging, h)
		if err != nil {
			return fmt.Errorf("promote %s: %w", h, err)
		}
		if err := s.Write(NamespaceBlobs, objType, h, payload); err != nil {
			return fmt.Errorf("promote %s: %w", h, err)
		}
	}
	return s.Delete(NamespaceStaging, h)
}

// List returns every digest stored in ns, sorted.
func (s *Store) List(ns Namespace) ([]Hash, error) {
	base := filepath.Join(s.root, "objects", string(ns))
	fanout, err := os.ReadDir(base)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("object list %s: %w", ns, err)
	}

	var out []Hash
	for _, d := range fanout {
		if !d.IsDir() || len(d.Name()) != 2 {
			continue
		}
		entries, err := os.ReadDir(filepath.Join(base, d.Name()))
		if err != nil {
			return nil, fmt.Errorf("object list %s: %w", ns, err)
		}
		for _, e := range entries {
			if e.IsDir() || strings.HasPrefix(e.Name(), ".tmp-") {
				continue
			}
			h := Hash(d.Name() + e.Name())
			if h.IsFull() {
				out = append(out, h)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

// ---------------------------------------------------------------------------
// Typed convenience methods
// ---------------------------------------------------------------------------

// WriteBlob serializes and stores a Blob in ns, returning its digest.
func (s *Store) WriteBlob(ns Namespace, b *Blob) (Hash, error) {
	h := b.Hash()
	if err := s.Write(ns, TypeBlob, h, MarshalBlob(b)); err != nil {
		return "", err
	}
	return h, nil
}

// ReadBlob reads and deserializes a Blob from ns.
func (s *Store) ReadBlob(ns Namespace, h Hash) (*Blob, error) {
	objType, data, err := s.Read(ns, h)
	if err != nil {
		return nil, err
	}
	if objType != TypeBlob {
		return nil, fmt.Errorf("object %s: %w: type mismatch: got %q, want %q", h, ErrNotFound, objType, TypeBlob)
	}
	return UnmarshalBlob(data)
}

// WriteCommit serializes and stores a CommitObj, returning its digest.
func (s *Store) WriteCommit(c *CommitObj) (Hash, error) {
	h := c.Hash()
	if err := s.Write(NamespaceCommits, TypeCommit, h, MarshalCommit(c)); err != nil {
		return "", err
	}
	return h, nil
}

// ReadCommit reads and deserializes a CommitObj.
func (s *Store) ReadCommit(h Hash) (*CommitObj, error) {
	objType, data, err := s.Read(NamespaceCommits, h)
	if err != nil {
		return nil, err
	}
	if objType != TypeCommit {
		return nil, fmt.Errorf("object %s: %w: type mismatch: got %q, want %q", h, ErrNotFound, objType, TypeCommit)
	}
	return UnmarshalCommit(data)
}
