// Package store keeps finished rig buffers in a Pebble database, keyed by asset name.
//
// Every record carries the keccak256 digest of the buffer it was stored with; reads verify it
// before handing the bytes back.
package store

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/cockroachdb/pebble"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/sirupsen/logrus"

	"github.com/rony4d/creature-flatdata/creature/schema"
)

var (
	ErrNotFound      = errors.New("asset not found")
	ErrCorrupt       = errors.New("asset record corrupt")
	ErrInvalidName   = errors.New("invalid asset name")
	ErrInvalidBuffer = errors.New("not a rig buffer")
)

// assetPrefix namespaces asset records, leaving room for other record kinds.
var assetPrefix = []byte("asset/")

// Options configures the underlying Pebble instance.
type Options struct {
	Path         string
	CacheSize    int64
	MaxOpenFiles int
}

// Entry describes one stored asset.
type Entry struct {
	Name   string
	Size   int
	Digest common.Hash
}

// Catalog is a named collection of rig buffers. It is safe for concurrent use.
type Catalog struct {
	db  *pebble.DB
	log logrus.FieldLogger
}

// Open opens (creating if needed) the catalog at opts.Path.
func Open(opts Options, log logrus.FieldLogger) (*Catalog, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if err := os.MkdirAll(opts.Path, 0o755); err != nil {
		return nil, fmt.Errorf("create catalog dir %s: %w", opts.Path, err)
	}

	pebbleOpts := &pebble.Options{
		MaxOpenFiles: opts.MaxOpenFiles,
	}
	if opts.CacheSize > 0 {
		cache := pebble.NewCache(opts.CacheSize)
		defer cache.Unref()
		pebbleOpts.Cache = cache
	}

	db, err := pebble.Open(opts.Path, pebbleOpts)
	if err != nil {
		return nil, fmt.Errorf("open catalog %s: %w", opts.Path, err)
	}
	log.WithField("path", opts.Path).Debug("Catalog opened")
	return &Catalog{db: db, log: log}, nil
}

func (c *Catalog) Close() error {
	return c.db.Close()
}

func assetKey(name string) []byte {
	return append(append([]byte{}, assetPrefix...), name...)
}

// Put stores buf under name, replacing any previous asset of that name. The buffer must be a
// readable rig: its root and the mesh, skeleton and animation slots are checked first.
func (c *Catalog) Put(name string, buf []byte) (common.Hash, error) {
	if name == "" {
		return common.Hash{}, ErrInvalidName
	}
	if err := checkRig(buf); err != nil {
		return common.Hash{}, fmt.Errorf("%w: %w", ErrInvalidBuffer, err)
	}

	digest := crypto.Keccak256Hash(buf)
	record := make([]byte, 0, common.HashLength+len(buf))
	record = append(record, digest.Bytes()...)
	record = append(record, buf...)

	if err := c.db.Set(assetKey(name), record, pebble.Sync); err != nil {
		return common.Hash{}, fmt.Errorf("store %s: %w", name, err)
	}
	c.log.WithFields(logrus.Fields{
		"name":   name,
		"size":   len(buf),
		"digest": digest.Hex(),
	}).Info("Stored asset")
	return digest, nil
}

func checkRig(buf []byte) error {
	root, err := schema.GetRootAsRootData(buf)
	if err != nil {
		return err
	}
	if _, err := root.DataMesh(); err != nil {
		return err
	}
	if _, err := root.DataSkeleton(); err != nil {
		return err
	}
	_, err = root.DataAnimation()
	return err
}

// Get returns a copy of the buffer stored under name.
func (c *Catalog) Get(name string) ([]byte, common.Hash, error) {
	value, closer, err := c.db.Get(assetKey(name))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, common.Hash{}, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, common.Hash{}, err
	}
	defer closer.Close()

	buf, digest, err := decodeRecord(value)
	if err != nil {
		c.log.WithField("name", name).WithError(err).Error("Corrupt asset record")
		return nil, common.Hash{}, fmt.Errorf("%s: %w", name, err)
	}
	return bytes.Clone(buf), digest, nil
}

// decodeRecord splits a record into buffer and digest and checks that they match. The returned
// buffer aliases value.
func decodeRecord(value []byte) ([]byte, common.Hash, error) {
	if len(value) < common.HashLength {
		return nil, common.Hash{}, fmt.Errorf("%w: record of %d bytes", ErrCorrupt, len(value))
	}
	digest := common.BytesToHash(value[:common.HashLength])
	buf := value[common.HashLength:]
	if got := crypto.Keccak256Hash(buf); got != digest {
		return nil, common.Hash{}, fmt.Errorf("%w: digest %s, content hashes to %s", ErrCorrupt, digest.Hex(), got.Hex())
	}
	return buf, digest, nil
}

// List returns every stored asset in name order. Digests are reported as stored, not
// re-verified.
func (c *Catalog) List() ([]Entry, error) {
	iter, err := c.db.NewIter(&pebble.IterOptions{
		LowerBound: assetPrefix,
		UpperBound: prefixEnd(assetPrefix),
	})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var entries []Entry
	for iter.First(); iter.Valid(); iter.Next() {
		value := iter.Value()
		if len(value) < common.HashLength {
			return nil, fmt.Errorf("%w: %s", ErrCorrupt, iter.Key())
		}
		entries = append(entries, Entry{
			Name:   string(iter.Key()[len(assetPrefix):]),
			Size:   len(value) - common.HashLength,
			Digest: common.BytesToHash(value[:common.HashLength]),
		})
	}
	return entries, iter.Error()
}

// Delete removes the asset stored under name.
func (c *Catalog) Delete(name string) error {
	key := assetKey(name)
	_, closer, err := c.db.Get(key)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return err
	}
	closer.Close()

	if err := c.db.Delete(key, pebble.Sync); err != nil {
		return fmt.Errorf("delete %s: %w", name, err)
	}
	c.log.WithField("name", name).Info("Deleted asset")
	return nil
}

// prefixEnd returns the smallest key greater than every key starting with prefix.
func prefixEnd(prefix []byte) []byte {
	end := append([]byte{}, prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return end[:i+1]
		}
	}
	return nil
}
