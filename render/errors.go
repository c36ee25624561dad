// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "errors"

var (
	// ErrUnknownBackend is returned by New for an unregistered name.
	ErrUnknownBackend = errors.New("render: unknown backend")

	// ErrNoBackend is returned by Default when nothing is registered.
	ErrNoBackend = errors.New("render: no backend registered")

	// ErrClosed is returned by drawing calls on a closed renderer.
	ErrClosed = errors.New("render: renderer closed")

	// ErrInvalidSize is returned for non-positive canvas sizes.
	ErrInvalidSize = errors.New("render: invalid canvas size")

	// ErrNoImages is returned by DrawImage on a context without textures.
	ErrNoImages = errors.New("render: images are not supported by this context")

	// ErrStateUnderflow is returned by Restore with an empty state stack.
	ErrStateUnderflow = errors.New("render: restore without save")
)
