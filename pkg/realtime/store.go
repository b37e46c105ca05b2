package realtime

import (
	"sync"
	"time"
)

// Room holds state and a broadcaster for one room.
type Room[T any] struct {
	ID    string
	State T
	hub   *Broadcaster
}

// Hub returns the room's broadcaster.
func (r *Room[T]) Hub() *Broadcaster { return r.hub }

// RoomStore manages rooms, their broadcasters and the timers scheduled on
// their behalf. Deleting a room stops its timers and closes its subscribers.
type RoomStore[T any] struct {
	mu     sync.RWMutex
	rooms  map[string]*Room[T]
	timers map[string]map[*time.Timer]struct{}
}

// NewRoomStore creates an empty room store.
func NewRoomStore[T any]() *RoomStore[T] {
	return &RoomStore[T]{
		rooms:  make(map[string]*Room[T]),
		timers: make(map[string]map[*time.Timer]struct{}),
	}
}

// Create adds a room with the given id and state, and a new Broadcaster.
func (s *RoomStore[T]) Create(id string, state T) *Room[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := &Room[T]{ID: id, State: state, hub: NewBroadcaster()}
	s.rooms[id] = r
	return r
}

// Get returns the room by ID if it exists.
func (s *RoomStore[T]) Get(id string) (*Room[T], bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rooms[id]
	return r, ok
}

// Len returns the number of rooms.
func (s *RoomStore[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rooms)
}

// Delete removes the room, stops its pending timers and closes its
// subscribers. It reports whether the room existed.
func (s *RoomStore[T]) Delete(id string) bool {
	s.mu.Lock()
	r, ok := s.rooms[id]
	delete(s.rooms, id)
	timers := s.timers[id]
	delete(s.timers, id)
	s.mu.Unlock()

	for t := range timers {
		t.Stop()
	}
	if ok {
		r.hub.Close()
	}
	return ok
}

// Publish notifies subscribers of the room's broadcaster. Unknown rooms are
// ignored.
func (s *RoomStore[T]) Publish(id string, event Event) {
	if hub, ok := s.Broadcaster(id); ok {
		hub.Publish(event)
	}
}

// Broadcaster returns the broadcaster for the room.
func (s *RoomStore[T]) Broadcaster(id string) (*Broadcaster, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rooms[id]
	if !ok {
		return nil, false
	}
	return r.hub, true
}

// Schedule runs fn after delay unless the room is deleted first. It reports
// false when the room does not exist.
func (s *RoomStore[T]) Schedule(id string, delay time.Duration, fn func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rooms[id]; !ok {
		return false
	}
	set, ok := s.timers[id]
	if !ok {
		set = make(map[*time.Timer]struct{})
		s.timers[id] = set
	}
	var t *time.Timer
	t = time.AfterFunc(delay, func() {
		s.mu.Lock()
		if set, ok := s.timers[id]; ok {
			delete(set, t)
		}
		s.mu.Unlock()
		fn()
	})
	set[t] = struct{}{}
	return true
}

// Pending returns the number of timers waiting to fire for the room.
func (s *RoomStore[T]) Pending(id string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.timers[id])
}

// Sweep deletes every room for which stale returns true and returns the
// deleted ids.
func (s *RoomStore[T]) Sweep(stale func(T) bool) []string {
	s.mu.RLock()
	var ids []string
	for id, r := range s.rooms {
		if stale(r.State) {
			ids = append(ids, id)
		}
	}
	s.mu.RUnlock()
	for _, id := range ids {
		s.Delete(id)
	}
	return ids
}
