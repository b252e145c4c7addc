// Package queue holds each user's personal ordered list of draft targets.
// Entries are unique within a queue. Users mutate their own queue; the
// engine drains a player from every queue the moment that player is drafted
// by anyone.
package queue

import (
	"errors"

	"github.com/google/uuid"
)

// ErrNotPermutation is returned by Reorder when the supplied order is not a
// permutation of the queue's current contents.
var ErrNotPermutation = errors.New("queue: reorder is not a permutation of current contents")

// ErrIndexOutOfRange is returned by Remove for an invalid index.
var ErrIndexOutOfRange = errors.New("queue: index out of range")

// Queue is one user's ordered list of player IDs.
type Queue struct {
	players []uuid.UUID
}

// Players returns a copy of the queue contents in order.
func (q *Queue) Players() []uuid.UUID {
	out := make([]uuid.UUID, len(q.players))
	copy(out, q.players)
	return out
}

// Len returns the number of queued players.
func (q *Queue) Len() int {
	return len(q.players)
}

// Contains reports whether playerID is queued.
func (q *Queue) Contains(playerID uuid.UUID) bool {
	for _, id := range q.players {
		if id == playerID {
			return true
		}
	}
	return false
}

// Enqueue appends playerID; duplicates are a silent no-op.
func (q *Queue) Enqueue(playerID uuid.UUID) {
	if q.Contains(playerID) {
		return
	}
	q.players = append(q.players, playerID)
}

// Remove deletes the entry at index, preserving order.
func (q *Queue) Remove(index int) error {
	if index < 0 || index >= len(q.players) {
		return ErrIndexOutOfRange
	}
	q.players = append(q.players[:index], q.players[index+1:]...)
	return nil
}

// Reorder replaces the queue order. newOrder must contain exactly the
// current entries, each once.
func (q *Queue) Reorder(newOrder []uuid.UUID) error {
	if len(newOrder) != len(q.players) {
		return ErrNotPermutation
	}
	current := make(map[uuid.UUID]int, len(q.players))
	for _, id := range q.players {
		current[id]++
	}
	for _, id := range newOrder {
		if current[id] == 0 {
			return ErrNotPermutation
		}
		current[id]--
	}
	q.players = append(q.players[:0:0], newOrder...)
	return nil
}

// drain removes playerID if present, reporting whether it was held.
func (q *Queue) drain(playerID uuid.UUID) bool {
	for i, id := range q.players {
		if id == playerID {
			q.players = append(q.players[:i], q.players[i+1:]...)
			return true
		}
	}
	return false
}

// Set is the session-wide collection of queues, keyed by owner user ID.
// Callers serialize access through the owning session.
type Set struct {
	queues map[uuid.UUID]*Queue
}

// NewSet creates an empty queue set.
func NewSet() *Set {
	return &Set{queues: make(map[uuid.UUID]*Queue)}
}

// Get returns the owner's queue, creating it on first use.
func (s *Set) Get(owner uuid.UUID) *Queue {
	q, ok := s.queues[owner]
	if !ok {
		q = &Queue{}
		s.queues[owner] = q
	}
	return q
}

// DrainDrafted removes playerID from every queue in the session and returns
// the owners whose queues held it, in no particular order. The engine calls
// this on every committed pick; the returned owners feed queue_alert events.
func (s *Set) DrainDrafted(playerID uuid.UUID) []uuid.UUID {
	var owners []uuid.UUID
	for owner, q := range s.queues {
		if q.drain(playerID) {
			owners = append(owners, owner)
		}
	}
	return owners
}

// All returns a copy of every non-empty queue's contents keyed by owner.
func (s *Set) All() map[uuid.UUID][]uuid.UUID {
	out := make(map[uuid.UUID][]uuid.UUID, len(s.queues))
	for owner, q := range s.queues {
		if q.Len() > 0 {
			out[owner] = q.Players()
		}
	}
	return out
}

// Restore replaces the set's contents, used when loading a session from the
// store.
func (s *Set) Restore(queues map[uuid.UUID][]uuid.UUID) {
	s.queues = make(map[uuid.UUID]*Queue, len(queues))
	for owner, players := range queues {
		q := &Queue{}
		for _, id := range players {
			q.Enqueue(id)
		}
		s.queues[owner] = q
	}
}
