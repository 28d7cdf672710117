// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package widget

import (
	"fmt"

	"github.com/klustr/go-klustr/scene"
)

// EventKind is the kind of a pointer event.
type EventKind int

const (
	Enter EventKind = iota
	Leave
	Click
)

var eventNames = [...]string{"enter", "leave", "click"}

func (k EventKind) String() string {
	if int(k) < len(eventNames) {
		return eventNames[k]
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// ParseEventKind parses the name of an event kind, as returned by
// String.
func ParseEventKind(s string) (EventKind, error) {
	for i, name := range eventNames {
		if s == name {
			return EventKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown event kind %q", s)
}

// An Event is a pointer event on a mark of the current scene.
type Event struct {
	Kind EventKind
	Mark scene.ID
}

func (e Event) String() string {
	return fmt.Sprintf("%s %d", e.Kind, e.Mark)
}

// UnknownMarkError is returned for an event on a mark that is not in
// the current scene, such as a stale event from before a redraw.
type UnknownMarkError struct {
	ID scene.ID
}

func (e *UnknownMarkError) Error() string {
	return fmt.Sprintf("no mark %d in current view", e.ID)
}
