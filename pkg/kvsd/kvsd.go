// Package kvsd is the embeddable entry point onto the storage engine: a
// single constructor that wires logging, configuration, and the engine
// together, for callers that want the key-value store in-process rather
// than over the wire protocol in internal/server.
package kvsd

import (
	"github.com/iamNilotpal/kvsd/internal/engine"
	"github.com/iamNilotpal/kvsd/pkg/logger"
	"github.com/iamNilotpal/kvsd/pkg/options"
)

// Store is a handle onto an open kvsd instance - the in-process counterpart
// to dialing internal/client at a running kvsd-server.
type Store struct {
	engine  engine.KVEngine
	options options.Options
}

// Open initializes a Store for service, applying opts on top of the
// project's defaults.
func Open(service string, opts ...options.OptionFunc) (*Store, error) {
	log := logger.New(service)

	resolved, err := options.Apply(opts...)
	if err != nil {
		return nil, err
	}

	eng, err := engine.New(engine.Config{Options: resolved, Logger: log})
	if err != nil {
		return nil, err
	}

	return &Store{engine: eng, options: resolved}, nil
}

// Set stores key/value, overwriting any previous value.
func (s *Store) Set(key, value string) error {
	return s.engine.Set(key, value)
}

// Get returns (value, true) for a live key, (_, false) for an unknown or
// removed key.
func (s *Store) Get(key string) (string, bool, error) {
	return s.engine.Get(key)
}

// Remove deletes key, returning an error (including kvsd's ErrKeyNotFound)
// if it cannot be removed.
func (s *Store) Remove(key string) error {
	return s.engine.Remove(key)
}

// Close releases the store's underlying file handles.
func (s *Store) Close() error {
	return s.engine.Close()
}
