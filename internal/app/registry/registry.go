package registry

import (
	"sync"

	"github.com/NelloGamerz/Meme-Vault/internal/core/contracts"
)

// Registry keeps the live-connection indices. Both indices are keyed
// independently: the user map entries swap atomically, and each item carries
// its own subscriber-set lock, so traffic on unrelated items never
// serializes. Invariant: any connection reachable from either index is open;
// close purges eagerly via RemoveConnection.
type Registry struct {
	users sync.Map // userID → contracts.Client
	items sync.Map // itemID → *subscriberSet
}

type subscriberSet struct {
	mu    sync.RWMutex
	conns map[string]contracts.Client // conn id → client
	gone  bool                        // removed from the index; racing adds must retry
}

func NewRegistry() *Registry {
	return &Registry{}
}

// RegisterUser upserts the user mapping, last writer wins. A displaced
// previous connection is closed explicitly rather than left to rot until its
// transport fails; its own close callback then runs RemoveConnection, which
// is mapping-aware and will not touch the new entry.
func (r *Registry) RegisterUser(userID string, c contracts.Client) {
	prev, loaded := r.users.Swap(userID, c)
	if !loaded {
		return
	}
	if old, ok := prev.(contracts.Client); ok && old.ID() != c.ID() {
		old.Close()
	}
}

// RegisterItem adds the connection to the item's subscriber set. Set
// semantics make repeated joins idempotent.
func (r *Registry) RegisterItem(itemID string, c contracts.Client) {
	for {
		v, _ := r.items.LoadOrStore(itemID, &subscriberSet{conns: make(map[string]contracts.Client)})
		set := v.(*subscriberSet)
		set.mu.Lock()
		if set.gone {
			// Lost a race with the last leaver; the entry is already off the
			// index, grab a fresh one.
			set.mu.Unlock()
			continue
		}
		set.conns[c.ID()] = c
		set.mu.Unlock()
		return
	}
}

// LeaveItem removes the connection from the set and drops the item key once
// its set is empty, so memory stays bounded to active items.
func (r *Registry) LeaveItem(itemID string, c contracts.Client) {
	v, ok := r.items.Load(itemID)
	if !ok {
		return
	}
	set := v.(*subscriberSet)
	set.mu.Lock()
	delete(set.conns, c.ID())
	if len(set.conns) == 0 && !set.gone {
		set.gone = true
		r.items.Delete(itemID)
	}
	set.mu.Unlock()
}

// RemoveConnection purges the connection from every index. Idempotent: a
// second call for the same connection finds nothing left to remove. The user
// entry is only deleted while it still points at this connection, so a
// close racing a duplicate-login replacement never evicts the replacement.
func (r *Registry) RemoveConnection(c contracts.Client) {
	if cur, ok := r.users.Load(c.UserID()); ok {
		if cl, _ := cur.(contracts.Client); cl != nil && cl.ID() == c.ID() {
			r.users.CompareAndDelete(c.UserID(), cur)
		}
	}
	r.items.Range(func(key, v any) bool {
		set := v.(*subscriberSet)
		set.mu.Lock()
		if _, ok := set.conns[c.ID()]; ok {
			delete(set.conns, c.ID())
			if len(set.conns) == 0 && !set.gone {
				set.gone = true
				r.items.Delete(key)
			}
		}
		set.mu.Unlock()
		return true
	})
}

// Subscribers returns a point-in-time snapshot. Callers must tolerate the
// set mutating after the snapshot is taken.
func (r *Registry) Subscribers(itemID string) []contracts.Client {
	v, ok := r.items.Load(itemID)
	if !ok {
		return nil
	}
	set := v.(*subscriberSet)
	set.mu.RLock()
	defer set.mu.RUnlock()
	out := make([]contracts.Client, 0, len(set.conns))
	for _, c := range set.conns {
		out = append(out, c)
	}
	return out
}

func (r *Registry) UserConnection(userID string) (contracts.Client, bool) {
	v, ok := r.users.Load(userID)
	if !ok {
		return nil, false
	}
	c, ok := v.(contracts.Client)
	return c, ok && c != nil
}
