package cache

import (
	"context"
	"sort"
	"sync"

	"github.com/pkg/errors"

	"github.com/trezcool/estudos/core"
)

type (
	Resource string
	Action   string
)

const (
	Subjects  Resource = "disciplinas"
	Reminders Resource = "lembretes"
	Contacts  Resource = "contatos"
	Materials Resource = "materiais"

	Created Action = "created"
	Updated Action = "updated"
	Deleted Action = "deleted"
)

// Event is published once after every successful mutation of a collection.
type Event struct {
	Resource Resource
	Action   Action
	ID       int
	Version  uint64
}

// API is the backend of one collection.
type API[T any, F any] interface {
	Mine(ctx context.Context) ([]T, error)
	Create(ctx context.Context, form F) (T, error)
	Update(ctx context.Context, id int, form F) (T, error)
	Delete(ctx context.Context, id int) error
}

// Collection is the single source of truth of the current user's items of one resource.
// Writes go to the API, then the whole collection is fetched again.
type Collection[T any, F any] struct {
	resource Resource
	api      API[T, F]
	id       func(T) int
	logger   core.Logger

	mutex   sync.RWMutex
	items   []T
	loaded  bool
	version uint64
	started uint64 // sequence number of the last fetch started
	applied uint64 // sequence number of the fetch `items` come from

	subMutex sync.Mutex
	subs     map[int]func(Event)
	nextSub  int
}

func NewCollection[T any, F any](resource Resource, api API[T, F], id func(T) int, logger core.Logger) *Collection[T, F] {
	return &Collection[T, F]{
		resource: resource,
		api:      api,
		id:       id,
		logger:   logger,
		subs:     make(map[int]func(Event)),
	}
}

func (c *Collection[T, F]) Resource() Resource { return c.resource }

// Items returns a copy of the items of the last successful fetch.
func (c *Collection[T, F]) Items() []T {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return append([]T(nil), c.items...)
}

func (c *Collection[T, F]) Loaded() bool {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.loaded
}

// Version increases every time new items are stored.
func (c *Collection[T, F]) Version() uint64 {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.version
}

// Refresh fetches the whole collection. On failure the previous items are kept.
// A fetch that completes after a more recent one was stored is discarded.
func (c *Collection[T, F]) Refresh(ctx context.Context) error {
	c.mutex.Lock()
	c.started++
	seq := c.started
	c.mutex.Unlock()

	items, err := c.api.Mine(ctx)
	if err != nil {
		return errors.Wrapf(err, "fetching %s", c.resource)
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()
	if seq <= c.applied {
		return nil
	}
	c.items = items
	c.applied = seq
	c.loaded = true
	c.version++
	return nil
}

// Reset forgets the stored items, eg. on logout.
func (c *Collection[T, F]) Reset() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.items = nil
	c.loaded = false
	c.applied = c.started
	c.version++
}

// Subscribe registers `fn` for the events published from now on. Past events are not replayed.
func (c *Collection[T, F]) Subscribe(fn func(Event)) (unsubscribe func()) {
	c.subMutex.Lock()
	defer c.subMutex.Unlock()

	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			c.subMutex.Lock()
			delete(c.subs, id)
			c.subMutex.Unlock()
		})
	}
}

// publish calls the subscribers in subscription order, outside of any lock.
func (c *Collection[T, F]) publish(evt Event) {
	c.subMutex.Lock()
	ids := make([]int, 0, len(c.subs))
	for id := range c.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]func(Event), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, c.subs[id])
	}
	c.subMutex.Unlock()

	for _, fn := range fns {
		fn(evt)
	}
}

// mutate runs a write, refetches the collection and publishes a single event.
// A failed refetch does not fail the write; the stale items are kept until the next refresh,
// except for a deleted item which is dropped locally.
func (c *Collection[T, F]) mutate(ctx context.Context, action Action, write func(context.Context) (int, error)) error {
	id, err := write(ctx)
	if err != nil {
		return err
	}
	if err = c.Refresh(ctx); err != nil {
		c.logger.Warn("refetch after write failed", errors.Wrapf(err, "%s %s %d", c.resource, action, id))
		if action == Deleted {
			c.drop(id)
		}
	}
	c.publish(Event{Resource: c.resource, Action: action, ID: id, Version: c.Version()})
	return nil
}

// drop removes item `id` from the stored items. Fetches started before are discarded.
func (c *Collection[T, F]) drop(id int) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	items := make([]T, 0, len(c.items))
	for _, it := range c.items {
		if c.id(it) != id {
			items = append(items, it)
		}
	}
	c.items = items
	c.applied = c.started
	c.version++
}

func (c *Collection[T, F]) Create(ctx context.Context, form F) (T, error) {
	var created T
	err := c.mutate(ctx, Created, func(ctx context.Context) (int, error) {
		var err error
		created, err = c.api.Create(ctx, form)
		return c.id(created), err
	})
	return created, err
}

func (c *Collection[T, F]) Update(ctx context.Context, id int, form F) (T, error) {
	var updated T
	err := c.mutate(ctx, Updated, func(ctx context.Context) (int, error) {
		var err error
		updated, err = c.api.Update(ctx, id, form)
		return id, err
	})
	return updated, err
}

func (c *Collection[T, F]) Delete(ctx context.Context, id int) error {
	return c.mutate(ctx, Deleted, func(ctx context.Context) (int, error) {
		return id, c.api.Delete(ctx, id)
	})
}
