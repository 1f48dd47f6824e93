package core

import (
	"sync"

	"github.com/samber/lo"
)

// Membership records one client's participation in a room. Duplicate
// names in one room are legal; identity is the connection itself.
type Membership struct {
	Client *Client
	Name   string
	Lang   string
}

type room struct {
	mu      sync.RWMutex
	members map[*Client]Membership
	// dead marks a room pruned from the registry; a Join that raced
	// with the pruning retries against a fresh room.
	dead bool
}

// Registry tracks which connections belong to which room. It owns the
// membership lists: removal happens here, triggered by the session
// handler on disconnect. All methods are safe for concurrent use;
// mutations and snapshots exclude each other per room, and nothing
// slower than a list copy runs inside a critical section.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*room
}

// NewRegistry returns an empty room registry.
func NewRegistry() *Registry {
	return &Registry{rooms: make(map[string]*room)}
}

// Join adds the client to the room, creating the room on first join.
// Joining again only refreshes the stored membership. It always succeeds.
func (r *Registry) Join(roomID string, c *Client) {
	for {
		rm := r.room(roomID)
		if rm == nil {
			r.mu.Lock()
			if r.rooms[roomID] == nil {
				r.rooms[roomID] = &room{members: make(map[*Client]Membership)}
			}
			rm = r.rooms[roomID]
			r.mu.Unlock()
		}

		rm.mu.Lock()
		if rm.dead {
			rm.mu.Unlock()
			continue
		}
		rm.members[c] = Membership{Client: c, Name: c.Name, Lang: c.Lang}
		rm.mu.Unlock()
		return
	}
}

// Leave removes the membership for this connection, if present.
// Removing a non-member is a silent no-op. A room left empty is pruned.
func (r *Registry) Leave(roomID string, c *Client) {
	rm := r.room(roomID)
	if rm == nil {
		return
	}

	rm.mu.Lock()
	delete(rm.members, c)
	empty := len(rm.members) == 0
	if empty {
		rm.dead = true
	}
	rm.mu.Unlock()

	if empty {
		r.mu.Lock()
		if r.rooms[roomID] == rm {
			delete(r.rooms, roomID)
		}
		r.mu.Unlock()
	}
}

// Snapshot returns a point-in-time copy of the room's membership list,
// or an empty slice for an unknown room. The copy never aliases live
// registry state, so concurrent joins and leaves cannot corrupt or
// skip entries mid-iteration.
func (r *Registry) Snapshot(roomID string) []Membership {
	rm := r.room(roomID)
	if rm == nil {
		return nil
	}

	rm.mu.RLock()
	defer rm.mu.RUnlock()
	return lo.MapToSlice(rm.members, func(_ *Client, m Membership) Membership { return m })
}

func (r *Registry) room(roomID string) *room {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.rooms[roomID]
}
