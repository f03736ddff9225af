package buildpipeline

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"
)

// Current schema version - increment when cachePayload format changes.
const cacheSchemaVersion uint16 = 1

// Digest is a sha256 content hash used as the cache key.
type Digest = [32]byte

// ArtifactCache stores emitted IR keyed by source content hash. It is
// strictly opt-in: the process contract promises no persisted state unless
// the user asks for it.
type ArtifactCache struct {
	dir string
}

type cachePayload struct {
	Schema uint16
	Path   string
	Hash   Digest
	IR     string
}

// OpenArtifactCache initializes a cache under the standard user cache
// location.
func OpenArtifactCache(app string) (*ArtifactCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app, "art")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &ArtifactCache{dir: dir}, nil
}

func (c *ArtifactCache) pathFor(key Digest) string {
	return filepath.Join(c.dir, hex.EncodeToString(key[:])+".mp")
}

// Put writes the emitted IR for key, atomically.
func (c *ArtifactCache) Put(key Digest, path, irText string) error {
	if c == nil {
		return nil
	}
	p := c.pathFor(key)
	f, err := os.CreateTemp(c.dir, "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(&cachePayload{
		Schema: cacheSchemaVersion,
		Path:   path,
		Hash:   key,
		IR:     irText,
	}); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get returns the cached IR for key, if present and schema-compatible.
func (c *ArtifactCache) Get(key Digest) (string, bool, error) {
	if c == nil {
		return "", false, nil
	}
	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, err
	}
	defer f.Close()

	var payload cachePayload
	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(&payload); err != nil {
		return "", false, err
	}
	if payload.Schema != cacheSchemaVersion || payload.Hash != key {
		return "", false, nil
	}
	return payload.IR, true, nil
}
