// Package optionstore keeps named update options presets. Presets are stored in
// the sparse JSON encoding of database.UpdateOptions, so any component reading
// that encoding can share them.
package optionstore

import (
	"context"
	"sort"
	"sync"

	"github.com/go-errors/errors"
	"github.com/xompass/vsaas-mongo/database"
)

var ErrPresetNotFound = errors.New("update options preset not found")

type Store interface {
	Save(ctx context.Context, name string, opts *database.UpdateOptions) error
	Load(ctx context.Context, name string) (*database.UpdateOptions, error)
	Delete(ctx context.Context, name string) error
	List(ctx context.Context) ([]string, error)
}

func encode(name string, opts *database.UpdateOptions) ([]byte, error) {
	if name == "" {
		return nil, errors.New("preset name cannot be empty")
	}
	if opts == nil {
		return nil, errors.Errorf("preset %s: options cannot be nil", name)
	}
	return opts.MarshalJSON()
}

// MemoryStore is a Store backed by a map. It is safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	presets map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{presets: make(map[string][]byte)}
}

func (receiver *MemoryStore) Save(_ context.Context, name string, opts *database.UpdateOptions) error {
	data, err := encode(name, opts)
	if err != nil {
		return err
	}

	receiver.mu.Lock()
	defer receiver.mu.Unlock()
	receiver.presets[name] = data
	return nil
}

func (receiver *MemoryStore) Load(_ context.Context, name string) (*database.UpdateOptions, error) {
	receiver.mu.RLock()
	data, ok := receiver.presets[name]
	receiver.mu.RUnlock()

	if !ok {
		return nil, ErrPresetNotFound
	}
	return database.ParseUpdateOptions(data)
}

func (receiver *MemoryStore) Delete(_ context.Context, name string) error {
	receiver.mu.Lock()
	defer receiver.mu.Unlock()

	if _, ok := receiver.presets[name]; !ok {
		return ErrPresetNotFound
	}
	delete(receiver.presets, name)
	return nil
}

func (receiver *MemoryStore) List(_ context.Context) ([]string, error) {
	receiver.mu.RLock()
	defer receiver.mu.RUnlock()

	names := make([]string, 0, len(receiver.presets))
	for name := range receiver.presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
