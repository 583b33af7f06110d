// Package memory implements the store gateway in process memory with real
// push fan-out. It backs tests and local development, standing in for the
// managed Realtime Database.
package memory

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"smartlab-backend/internal/store"
)

type subscriber struct {
	path   string
	onData func(json.RawMessage)
}

// Store keeps the whole document tree as decoded JSON values guarded by a
// single mutex. Values written through any operation are normalized via a
// JSON round-trip so reads behave exactly like the remote store.
type Store struct {
	mu      sync.Mutex
	root    map[string]interface{}
	subs    map[int]*subscriber
	nextSub int
}

func New() *Store {
	return &Store{
		root: make(map[string]interface{}),
		subs: make(map[int]*subscriber),
	}
}

func (s *Store) Create(ctx context.Context, path string, value interface{}) error {
	norm, err := normalize(value)
	if err != nil {
		return &store.Error{Op: "create", Path: path, Err: err}
	}
	s.mu.Lock()
	s.set(splitPath(path), norm)
	pending := s.pending(path)
	s.mu.Unlock()
	deliver(pending)
	return nil
}

func (s *Store) Read(ctx context.Context, path string, dest interface{}) error {
	s.mu.Lock()
	value, ok := s.get(splitPath(path))
	s.mu.Unlock()
	if !ok {
		return &store.Error{Op: "read", Path: path, Err: store.ErrPathNotFound}
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return &store.Error{Op: "read", Path: path, Err: err}
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return &store.Error{Op: "read", Path: path, Err: err}
	}
	return nil
}

func (s *Store) Update(ctx context.Context, path string, partial map[string]interface{}) error {
	s.mu.Lock()
	segments := splitPath(path)
	for key, value := range partial {
		norm, err := normalize(value)
		if err != nil {
			s.mu.Unlock()
			return &store.Error{Op: "update", Path: path, Err: err}
		}
		s.set(append(append([]string{}, segments...), key), norm)
	}
	pending := s.pending(path)
	s.mu.Unlock()
	deliver(pending)
	return nil
}

func (s *Store) Delete(ctx context.Context, path string) error {
	s.mu.Lock()
	s.set(splitPath(path), nil)
	pending := s.pending(path)
	s.mu.Unlock()
	deliver(pending)
	return nil
}

func (s *Store) Transact(ctx context.Context, path string, fn store.UpdateFn) error {
	s.mu.Lock()
	current, ok := s.get(splitPath(path))
	raw := json.RawMessage("null")
	if ok {
		encoded, err := json.Marshal(current)
		if err != nil {
			s.mu.Unlock()
			return &store.Error{Op: "transact", Path: path, Err: err}
		}
		raw = encoded
	}
	next, err := fn(txNode{raw: raw})
	if err != nil {
		s.mu.Unlock()
		return &store.Error{Op: "transact", Path: path, Err: err}
	}
	norm, err := normalize(next)
	if err != nil {
		s.mu.Unlock()
		return &store.Error{Op: "transact", Path: path, Err: err}
	}
	s.set(splitPath(path), norm)
	pending := s.pending(path)
	s.mu.Unlock()
	deliver(pending)
	return nil
}

func (s *Store) Subscribe(path string, onData func(json.RawMessage), onError func(error)) (func(), error) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = &subscriber{path: path, onData: onData}
	initial := s.snapshot(path)
	s.mu.Unlock()

	// Initial delivery with the current value, per the subscribe contract.
	onData(initial)

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}, nil
}

type txNode struct {
	raw json.RawMessage
}

func (n txNode) Unmarshal(v interface{}) error {
	return json.Unmarshal(n.raw, v)
}

type delivery struct {
	onData func(json.RawMessage)
	data   json.RawMessage
}

// pending collects subscriber callbacks affected by a change at path. A
// subscriber is affected when its path and the changed path lie on the same
// branch of the tree.
func (s *Store) pending(changed string) []delivery {
	var out []delivery
	for _, sub := range s.subs {
		if !sameBranch(sub.path, changed) {
			continue
		}
		out = append(out, delivery{onData: sub.onData, data: s.snapshot(sub.path)})
	}
	return out
}

func (s *Store) snapshot(path string) json.RawMessage {
	value, ok := s.get(splitPath(path))
	if !ok {
		return json.RawMessage("null")
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return json.RawMessage("null")
	}
	return raw
}

func deliver(pending []delivery) {
	for _, d := range pending {
		d.onData(d.data)
	}
}

func (s *Store) get(segments []string) (interface{}, bool) {
	var current interface{} = s.root
	for _, seg := range segments {
		node, ok := current.(map[string]interface{})
		if !ok {
			return nil, false
		}
		current, ok = node[seg]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// set writes value at the path, creating intermediate maps. A nil value
// removes the node, matching remote store semantics.
func (s *Store) set(segments []string, value interface{}) {
	if len(segments) == 0 {
		if m, ok := value.(map[string]interface{}); ok {
			s.root = m
		} else {
			s.root = make(map[string]interface{})
		}
		return
	}
	node := s.root
	for _, seg := range segments[:len(segments)-1] {
		child, ok := node[seg].(map[string]interface{})
		if !ok {
			child = make(map[string]interface{})
			node[seg] = child
		}
		node = child
	}
	leaf := segments[len(segments)-1]
	if value == nil {
		delete(node, leaf)
		return
	}
	node[leaf] = value
}

func normalize(value interface{}) (interface{}, error) {
	if value == nil {
		return nil, nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	var out interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func splitPath(path string) []string {
	var out []string
	for _, seg := range strings.Split(path, "/") {
		if seg != "" {
			out = append(out, seg)
		}
	}
	return out
}

func sameBranch(a, b string) bool {
	as, bs := splitPath(a), splitPath(b)
	n := len(as)
	if len(bs) < n {
		n = len(bs)
	}
	for i := 0; i < n; i++ {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}
