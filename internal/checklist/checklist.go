package checklist

import (
	"errors"
	"sync"
)

var ErrItemNotFound = errors.New("checklist item not found")

// Status is the review state of a single checklist item.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusWarning   Status = "warning"
	StatusFailed    Status = "failed"
)

// Next returns the status following s in the fixed review cycle
// pending → completed → warning → failed → pending. There is no terminal
// state; four toggles always return an item to where it started. Unknown
// statuses reset to pending.
func (s Status) Next() Status {
	switch s {
	case StatusPending:
		return StatusCompleted
	case StatusCompleted:
		return StatusWarning
	case StatusWarning:
		return StatusFailed
	default:
		return StatusPending
	}
}

// Item is one reviewer-toggled verification checkpoint.
type Item struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Status      Status `json:"status"`
	Description string `json:"description,omitempty"`
}

// List holds the checklist for one review session. Items advance only on
// explicit Toggle calls; every transition hands the subscriber a complete
// snapshot of the whole list, never a per-item delta.
type List struct {
	mu       sync.Mutex
	items    []Item
	onUpdate func([]Item)
}

// NewList seeds a session from the caller-supplied initial items. onUpdate
// may be nil.
func NewList(items []Item, onUpdate func([]Item)) *List {
	cp := make([]Item, len(items))
	copy(cp, items)
	return &List{items: cp, onUpdate: onUpdate}
}

// Toggle advances the identified item one step along the cycle and returns
// the updated snapshot.
func (l *List) Toggle(id string) ([]Item, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	found := false
	for i := range l.items {
		if l.items[i].ID == id {
			l.items[i].Status = l.items[i].Status.Next()
			found = true
			break
		}
	}
	if !found {
		return nil, ErrItemNotFound
	}

	snap := l.snapshotLocked()
	if l.onUpdate != nil {
		l.onUpdate(snap)
	}
	return snap, nil
}

// Items returns a snapshot of the current list.
func (l *List) Items() []Item {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshotLocked()
}

func (l *List) snapshotLocked() []Item {
	snap := make([]Item, len(l.items))
	copy(snap, l.items)
	return snap
}
