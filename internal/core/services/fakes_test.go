package services

import (
	"context"
	"sync"
	"time"

	"github.com/NelloGamerz/Meme-Vault/internal/core/contracts"
	"github.com/NelloGamerz/Meme-Vault/internal/core/domain"
)

// In-memory doubles for the store, cache, fan-out and notification ports.
// They mirror the real adapters' contracts: set operations report whether
// anything changed, counters never go below zero.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User // keyed by username
	seen  map[string][]string
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]*domain.User), seen: make(map[string][]string)}
	for _, u := range users {
		r.users[u.Username] = u
	}
	return r
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) byID(id string) *domain.User {
	for _, u := range r.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

func (r *fakeUserRepo) addTo(set *[]string, memeID string) bool {
	for _, id := range *set {
		if id == memeID {
			return false
		}
	}
	*set = append(*set, memeID)
	return true
}

func (r *fakeUserRepo) removeFrom(set *[]string, memeID string) bool {
	for i, id := range *set {
		if id == memeID {
			*set = append((*set)[:i], (*set)[i+1:]...)
			return true
		}
	}
	return false
}

func (r *fakeUserRepo) AddLikedMeme(ctx context.Context, userID, memeID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := r.byID(userID)
	if u == nil {
		return false, domain.ErrUserNotFound
	}
	return r.addTo(&u.LikedMemes, memeID), nil
}

func (r *fakeUserRepo) RemoveLikedMeme(ctx context.Context, userID, memeID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := r.byID(userID)
	if u == nil {
		return false, domain.ErrUserNotFound
	}
	return r.removeFrom(&u.LikedMemes, memeID), nil
}

func (r *fakeUserRepo) AddSavedMeme(ctx context.Context, userID, memeID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := r.byID(userID)
	if u == nil {
		return false, domain.ErrUserNotFound
	}
	return r.addTo(&u.SavedMemes, memeID), nil
}

func (r *fakeUserRepo) RemoveSavedMeme(ctx context.Context, userID, memeID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := r.byID(userID)
	if u == nil {
		return false, domain.ErrUserNotFound
	}
	return r.removeFrom(&u.SavedMemes, memeID), nil
}

func (r *fakeUserRepo) AddSeenMeme(ctx context.Context, userID, memeID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen[userID] = append(r.seen[userID], memeID)
	return nil
}

type fakeMemeRepo struct {
	mu    sync.Mutex
	memes map[string]*domain.Meme
}

func newFakeMemeRepo(memes ...*domain.Meme) *fakeMemeRepo {
	r := &fakeMemeRepo{memes: make(map[string]*domain.Meme)}
	for _, m := range memes {
		r.memes[m.ID] = m
	}
	return r
}

func (r *fakeMemeRepo) GetByID(ctx context.Context, id string) (*domain.Meme, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.memes[id]
	if !ok {
		return nil, domain.ErrMemeNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *fakeMemeRepo) ListAll(ctx context.Context) ([]domain.Meme, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Meme, 0, len(r.memes))
	for _, m := range r.memes {
		out = append(out, *m)
	}
	return out, nil
}

func (r *fakeMemeRepo) adjust(id string, counter *int, delta int) (int, error) {
	if *counter+delta < 0 {
		return *counter, nil
	}
	*counter += delta
	return *counter, nil
}

func (r *fakeMemeRepo) AdjustLikeCount(ctx context.Context, memeID string, delta int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.memes[memeID]
	if !ok {
		return 0, domain.ErrMemeNotFound
	}
	return r.adjust(memeID, &m.LikeCount, delta)
}

func (r *fakeMemeRepo) AdjustSaveCount(ctx context.Context, memeID string, delta int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.memes[memeID]
	if !ok {
		return 0, domain.ErrMemeNotFound
	}
	return r.adjust(memeID, &m.SaveCount, delta)
}

func (r *fakeMemeRepo) IncrementCommentsCount(ctx context.Context, memeID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.memes[memeID]
	if !ok {
		return 0, domain.ErrMemeNotFound
	}
	m.CommentsCount++
	return m.CommentsCount, nil
}

type fakeCommentRepo struct {
	mu       sync.Mutex
	comments []domain.Comment
}

func (r *fakeCommentRepo) Insert(ctx context.Context, c *domain.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.ID = "comment-1"
	r.comments = append(r.comments, *c)
	return nil
}

func (r *fakeCommentRepo) ListByMeme(ctx context.Context, memeID string) ([]domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Comment
	for _, c := range r.comments {
		if c.MemeID == memeID {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeCache struct {
	mu    sync.Mutex
	feed  []domain.Meme
	warm  bool
	sets  int
	lastT time.Duration
}

func (c *fakeCache) GetFeed(ctx context.Context) ([]domain.Meme, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.warm {
		return nil, nil
	}
	out := make([]domain.Meme, len(c.feed))
	copy(out, c.feed)
	return out, nil
}

func (c *fakeCache) SetFeed(ctx context.Context, memes []domain.Meme, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.feed = memes
	c.warm = true
	c.sets++
	c.lastT = ttl
	return nil
}

type broadcastCall struct {
	itemID  string
	payload any
}

type fakeBroadcaster struct {
	mu         sync.Mutex
	broadcasts []broadcastCall
	directs    map[string][]any
}

func newFakeBroadcaster() *fakeBroadcaster {
	return &fakeBroadcaster{directs: make(map[string][]any)}
}

func (b *fakeBroadcaster) BroadcastToItem(ctx context.Context, itemID string, payload any) []contracts.Delivery {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.broadcasts = append(b.broadcasts, broadcastCall{itemID: itemID, payload: payload})
	return nil
}

func (b *fakeBroadcaster) SendToUser(ctx context.Context, userID string, payload any) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.directs[userID] = append(b.directs[userID], payload)
	return nil
}

type fakeNotifier struct {
	mu            sync.Mutex
	notifications []domain.Notification
}

func (n *fakeNotifier) Notify(ctx context.Context, notification domain.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notifications = append(n.notifications, notification)
	return nil
}

type fakeHub struct {
	mu     sync.Mutex
	joined map[string][]string // itemID → conn ids
}

func newFakeHub() *fakeHub {
	return &fakeHub{joined: make(map[string][]string)}
}

func (h *fakeHub) RegisterUser(userID string, c contracts.Client) {}

func (h *fakeHub) RegisterItem(itemID string, c contracts.Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.joined[itemID] = append(h.joined[itemID], c.ID())
}

func (h *fakeHub) LeaveItem(itemID string, c contracts.Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	ids := h.joined[itemID]
	for i, id := range ids {
		if id == c.ID() {
			h.joined[itemID] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
}

func (h *fakeHub) RemoveConnection(c contracts.Client) {}

func (h *fakeHub) Subscribers(itemID string) []contracts.Client { return nil }

func (h *fakeHub) UserConnection(userID string) (contracts.Client, bool) { return nil, false }

type fakeConn struct {
	id       string
	userID   string
	username string
	mu       sync.Mutex
	frames   [][]byte
}

func (c *fakeConn) ID() string       { return c.id }
func (c *fakeConn) UserID() string   { return c.userID }
func (c *fakeConn) Username() string { return c.username }
func (c *fakeConn) Close()           {}

func (c *fakeConn) Send(ctx context.Context, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frames = append(c.frames, data)
	return nil
}

func (c *fakeConn) sentFrames() [][]byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([][]byte, len(c.frames))
	copy(out, c.frames)
	return out
}
