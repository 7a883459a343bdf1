package storage

import (
	"fmt"
	"os"
	"sync"

	json "github.com/goccy/go-json"

	"blogd/internal/providers"
	"blogd/internal/schema"
)

// collection is one whole-file JSON array. mu guards every access to the
// file, including the read-modify-write sequences built on update.
type collection[T any] struct {
	mu   sync.Mutex
	name string
	path string
	pipe schema.Pipeline[T]
}

func newCollection[T any](name, path string, pipe schema.Pipeline[T]) *collection[T] {
	return &collection[T]{name: name, path: path, pipe: pipe}
}

// read must be called with mu held. It never fails: an unreadable file is
// reset to [] and records that do not survive the pipeline are skipped.
func (c *collection[T]) read(s *Store) []T {
	data, err := os.ReadFile(c.path)
	var raws []json.RawMessage
	if err == nil {
		raws, err = decodeArray(data)
	}
	if err != nil {
		s.heal(c.name, c.path, []T{}, err)
		return []T{}
	}

	out := make([]T, 0, len(raws))
	for i, raw := range raws {
		var rec T
		if err := json.Unmarshal(raw, &rec); err != nil {
			s.dropRecord(c.name, i, err)
			continue
		}
		rec = c.pipe.Normalize(rec)
		if errs := c.pipe.Check(rec); !errs.Empty() {
			s.dropRecord(c.name, i, errs)
			continue
		}
		out = append(out, rec)
	}
	return out
}

// write must be called with mu held. Nothing is written unless every record
// passes; the stored records are returned.
func (c *collection[T]) write(s *Store, records []T) ([]T, error) {
	clean, errs := schema.CheckAll(c.pipe, c.name, records)
	if errs != nil {
		return nil, fmt.Errorf("save %s: %w", c.name, errs)
	}
	if err := s.writeDocument(c.name, c.path, clean); err != nil {
		return nil, err
	}
	return clean, nil
}

func (c *collection[T]) get(s *Store) []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.read(s)
}

func (c *collection[T]) save(s *Store, records []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := c.write(s, records)
	return err
}

// update runs fn on the current records and persists the result, all under
// one hold of mu. fn returning an error leaves the file untouched.
func (c *collection[T]) update(s *Store, fn func([]T) ([]T, error)) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	next, err := fn(c.read(s))
	if err != nil {
		return nil, err
	}
	return c.write(s, next)
}

func (s *Store) heal(name, path string, empty any, cause error) {
	s.logger.Warnf(providers.TypeStore, "%s: %v, reinitializing", name, cause)
	s.metrics.IncSelfHeals(name)
	if err := s.writeDocument(name, path, empty); err != nil {
		s.logger.Errorf(providers.TypeStore, "%s: reinitialize failed: %v", name, err)
	}
}

func (s *Store) dropRecord(name string, index int, cause error) {
	s.logger.Warnf(providers.TypeStore, "%s[%d] dropped: %v", name, index, cause)
	s.metrics.IncRecordsDropped(name)
}
