// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package portfolio

import "sync"

// Lazy is a template field computed on first access and memoized.
// Templates read it with {{.field.Get}}.
type Lazy[T any] struct {
	once sync.Once
	fn   func() T
	val  T
	done bool
}

// NewLazy wraps fn so that it runs at most once, on the first Get.
func NewLazy[T any](fn func() T) *Lazy[T] {
	return &Lazy[T]{fn: fn}
}

// Resolved returns a Lazy that already holds v.
func Resolved[T any](v T) *Lazy[T] {
	l := &Lazy[T]{val: v, done: true}
	l.once.Do(func() {})
	return l
}

// Get returns the value, computing it if needed.
func (l *Lazy[T]) Get() T {
	l.once.Do(func() {
		l.val = l.fn()
		l.done = true
	})
	return l.val
}

// Evaluated reports whether the value has been computed.
func (l *Lazy[T]) Evaluated() bool {
	return l.done
}
