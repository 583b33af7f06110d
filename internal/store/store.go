// Package store abstracts the path-keyed realtime document store backing
// the system. Entities live under hierarchical paths such as
// "inventoryItems/{id}"; reads and writes address one path at a time and
// subscribers receive the full current value at a path on every change.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Collection roots and singleton paths.
const (
	PathInventoryItems = "inventoryItems"
	PathBorrowRequests = "borrowRequests"
	PathNotifications  = "notifications"
	PathUsers          = "users"
	PathMetrics        = "environmentalMetrics"
	PathSettings       = "settings"
)

// ErrPathNotFound is returned by Read when no value exists at the path.
var ErrPathNotFound = errors.New("no value at path")

// Error wraps a transport or permission failure from the underlying store.
type Error struct {
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("store %s %q: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// TxNode exposes the current value inside a Transact callback.
type TxNode interface {
	Unmarshal(v interface{}) error
}

// UpdateFn receives the current value at the transaction path and returns
// the replacement value. Returning an error aborts the transaction.
type UpdateFn func(node TxNode) (interface{}, error)

// Store is the data store gateway. All operations fail with *Error on
// transport problems; Read additionally fails with ErrPathNotFound (wrapped)
// when the path holds no value.
type Store interface {
	Create(ctx context.Context, path string, value interface{}) error
	Read(ctx context.Context, path string, dest interface{}) error
	Update(ctx context.Context, path string, partial map[string]interface{}) error
	Delete(ctx context.Context, path string) error

	// Transact atomically applies fn to the value at path.
	Transact(ctx context.Context, path string, fn UpdateFn) error

	// Subscribe registers a push callback for the path. onData receives the
	// JSON encoding of the current value (null when absent), first
	// immediately and then after every change. The returned function
	// cancels the subscription.
	Subscribe(path string, onData func(json.RawMessage), onError func(error)) (func(), error)
}

// EntityPath joins a collection root with an entity id.
func EntityPath(collection, id string) string {
	return collection + "/" + id
}
