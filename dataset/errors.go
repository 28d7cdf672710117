// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataset

import "fmt"

// EmptyDatasetError is returned when there are no observations to
// lay out. Nothing is drawn and previously drawn marks are left
// untouched.
type EmptyDatasetError struct {
	What string
}

func (e *EmptyDatasetError) Error() string {
	if e.What == "" {
		return "empty dataset"
	}
	return "empty dataset: no " + e.What
}

// InvalidProjectionIndexError is returned when a requested axis
// index is outside the dimensions of a record. Index is 0-based.
type InvalidProjectionIndexError struct {
	Index, NumDims int
}

func (e *InvalidProjectionIndexError) Error() string {
	return fmt.Sprintf("projection index %d out of range for %d dimensions", e.Index+1, e.NumDims)
}

// InputError reports malformed input. It is fatal: the input is
// rejected before any drawing begins.
type InputError struct {
	Field string
	Err   error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("bad input field %q: %v", e.Field, e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

func inputErrorf(field, format string, args ...interface{}) error {
	return &InputError{field, fmt.Errorf(format, args...)}
}
