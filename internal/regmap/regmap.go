/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package regmap provides the generic, concurrency-safe, insertion-ordered
// id-keyed registry used throughout the engine to hold Servers, Plugins,
// Hooks and control Peers. Entries may be enumerated (Walk) from any
// goroutine while the event loop is the only writer that mutates them.
//
// Ordering matters here: plugin fan-out runs in load order and SERVER-LIST/
// PLUGIN-LIST/HOOK-LIST report entries in the order they were registered,
// so Keys/Walk must be deterministic rather than the random order a plain
// sync.Map.Range would give.
package regmap

import "sync"

// Registry is a concurrency-safe, insertion-ordered map from a comparable
// id to a value of type V. It is the one registry type the engine uses for
// every id-keyed collection (servers by name, plugins by id, hooks by
// name, peers by connection).
type Registry[K comparable, V any] interface {
	// Load returns the value stored for key, and whether it was present.
	Load(key K) (value V, ok bool)

	// Store sets the value for key, overwriting any existing entry. A key
	// seen for the first time is appended to the insertion order; storing
	// over an existing key does not move it.
	Store(key K, value V)

	// LoadOrStore returns the existing value for key if present;
	// otherwise it stores and returns value with loaded set to false.
	LoadOrStore(key K, value V) (actual V, loaded bool)

	// LoadAndDelete removes key and returns the value that was stored,
	// if any.
	LoadAndDelete(key K) (value V, loaded bool)

	// Delete removes key from the registry. It is a no-op if key is
	// not present.
	Delete(key K)

	// Has reports whether key is present.
	Has(key K) bool

	// Walk calls f for every entry in insertion order. Walk stops early
	// if f returns false.
	Walk(f func(key K, value V) bool)

	// Keys returns a snapshot of every key currently present, in
	// insertion order.
	Keys() []K

	// Len returns the number of entries currently present.
	Len() int
}

type registry[K comparable, V any] struct {
	mu    sync.RWMutex
	m     map[K]V
	order []K
}

// New returns an empty Registry for key type K and value type V.
func New[K comparable, V any]() Registry[K, V] {
	return &registry[K, V]{m: make(map[K]V)}
}

func (r *registry[K, V]) Load(key K) (value V, ok bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.m[key]
	return v, ok
}

func (r *registry[K, V]) Store(key K, value V) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.m[key]; !exists {
		r.order = append(r.order, key)
	}
	r.m[key] = value
}

func (r *registry[K, V]) LoadOrStore(key K, value V) (actual V, loaded bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if v, exists := r.m[key]; exists {
		return v, true
	}

	r.m[key] = value
	r.order = append(r.order, key)
	return value, false
}

func (r *registry[K, V]) LoadAndDelete(key K) (value V, loaded bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.m[key]
	if !ok {
		var zero V
		return zero, false
	}

	delete(r.m, key)
	r.removeFromOrder(key)
	return v, true
}

func (r *registry[K, V]) Delete(key K) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.m[key]; !ok {
		return
	}

	delete(r.m, key)
	r.removeFromOrder(key)
}

// removeFromOrder must be called with mu held.
func (r *registry[K, V]) removeFromOrder(key K) {
	for i, k := range r.order {
		if k == key {
			r.order = append(r.order[:i], r.order[i+1:]...)
			return
		}
	}
}

func (r *registry[K, V]) Has(key K) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.m[key]
	return ok
}

func (r *registry[K, V]) Walk(f func(key K, value V) bool) {
	for _, key := range r.Keys() {
		r.mu.RLock()
		value, ok := r.m[key]
		r.mu.RUnlock()

		if !ok {
			continue
		}
		if !f(key, value) {
			return
		}
	}
}

func (r *registry[K, V]) Keys() []K {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]K, len(r.order))
	copy(keys, r.order)
	return keys
}

func (r *registry[K, V]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.order)
}
