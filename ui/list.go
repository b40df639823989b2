package ui

import (
	"context"
	"sync"

	"github.com/trezcool/estudos/cache"
	"github.com/trezcool/estudos/core"
	"github.com/trezcool/estudos/core/subject"
)

type State int

const (
	Loading State = iota
	Ready
)

// NoSubject is the group title of items whose subject is unknown.
const NoSubject = "Sem disciplina"

// source is what a list view needs from a cache collection.
type source[T any] interface {
	Items() []T
	Delete(ctx context.Context, id int) error
	Subscribe(fn func(cache.Event)) (unsubscribe func())
}

type listMessages struct {
	loadErrTitle, loadErrDesc     string
	deletedTitle, deletedDesc     string
	deleteErrTitle, deleteErrDesc string
}

// Group holds the visible items of one subject.
type Group[T any] struct {
	Subject string
	Items   []T
}

// ListView shows one collection with a search term and a category filter.
// It follows the collection: every event re-reads the items.
type ListView[T any] struct {
	src      source[T]
	refresh  func(ctx context.Context) error
	subjects func() []subject.Subject
	notifier core.Notifier
	msgs     listMessages

	subjectOf func(T) int // nil when items have no subject
	match     func(item T, term, subjectName string) bool
	inCat     func(item T, key string) bool
	sort      func([]T)

	mutex    sync.RWMutex
	state    State
	items    []T
	search   string
	category string

	unsubscribe func()
}

func (v *ListView[T]) mount() *ListView[T] {
	v.state = Loading
	v.items = make([]T, 0)
	v.unsubscribe = v.src.Subscribe(func(cache.Event) { v.sync() })
	return v
}

// Close stops following the collection.
func (v *ListView[T]) Close() { v.unsubscribe() }

// Load fetches the collection (and what it depends on).
// On failure an error toast is shown and the view is Ready with no items.
func (v *ListView[T]) Load(ctx context.Context) error {
	v.mutex.Lock()
	v.state = Loading
	v.mutex.Unlock()

	if err := v.refresh(ctx); err != nil {
		v.mutex.Lock()
		v.items = make([]T, 0)
		v.state = Ready
		v.mutex.Unlock()
		v.notifier.Error(v.msgs.loadErrTitle, v.msgs.loadErrDesc)
		return err
	}
	v.sync()
	return nil
}

func (v *ListView[T]) sync() {
	items := v.src.Items()
	if v.sort != nil {
		v.sort(items)
	}
	v.mutex.Lock()
	v.items = items
	v.state = Ready
	v.mutex.Unlock()
}

func (v *ListView[T]) State() State {
	v.mutex.RLock()
	defer v.mutex.RUnlock()
	return v.state
}

// Items returns every item, unfiltered.
func (v *ListView[T]) Items() []T {
	v.mutex.RLock()
	defer v.mutex.RUnlock()
	return append([]T(nil), v.items...)
}

func (v *ListView[T]) SetSearch(term string) {
	v.mutex.Lock()
	v.search = core.CleanString(term)
	v.mutex.Unlock()
}

// SetCategory sets the category filter; "" shows every category.
func (v *ListView[T]) SetCategory(key string) {
	v.mutex.Lock()
	v.category = core.CleanString(key)
	v.mutex.Unlock()
}

// Visible returns the items matching both the search term and the category.
func (v *ListView[T]) Visible() []T {
	v.mutex.RLock()
	items, term, cat := v.items, v.search, v.category
	v.mutex.RUnlock()

	names := v.subjectNames()
	res := make([]T, 0, len(items))
	for _, it := range items {
		if v.match(it, term, v.subjectName(names, it)) && (cat == "" || v.inCat(it, cat)) {
			res = append(res, it)
		}
	}
	return res
}

// Counts returns the number of visible items and the total.
func (v *ListView[T]) Counts() (visible, total int) {
	v.mutex.RLock()
	total = len(v.items)
	v.mutex.RUnlock()
	return len(v.Visible()), total
}

// Groups returns the visible items grouped by subject, in subject order.
// Items of an unknown subject come last under NoSubject.
func (v *ListView[T]) Groups() []Group[T] {
	if v.subjectOf == nil {
		return nil
	}
	visible := v.Visible()
	bySubject := make(map[int][]T)
	for _, it := range visible {
		bySubject[v.subjectOf(it)] = append(bySubject[v.subjectOf(it)], it)
	}

	groups := make([]Group[T], 0, len(bySubject))
	for _, s := range v.subjectList() {
		if items, ok := bySubject[s.ID]; ok {
			groups = append(groups, Group[T]{Subject: s.Name, Items: items})
			delete(bySubject, s.ID)
		}
	}
	var orphans []T
	for _, it := range visible {
		if _, ok := bySubject[v.subjectOf(it)]; ok {
			orphans = append(orphans, it)
		}
	}
	if len(orphans) > 0 {
		groups = append(groups, Group[T]{Subject: NoSubject, Items: orphans})
	}
	return groups
}

// Delete removes an item through the cache, then shows a toast.
func (v *ListView[T]) Delete(ctx context.Context, id int) error {
	if err := v.src.Delete(ctx, id); err != nil {
		desc := v.msgs.deleteErrDesc
		if desc == "" {
			desc = Describe(err)
		}
		v.notifier.Error(v.msgs.deleteErrTitle, desc)
		return err
	}
	v.sync()
	v.notifier.Success(v.msgs.deletedTitle, v.msgs.deletedDesc)
	return nil
}

func (v *ListView[T]) subjectList() []subject.Subject {
	if v.subjects == nil {
		return nil
	}
	return v.subjects()
}

func (v *ListView[T]) subjectNames() map[int]string {
	return subject.Names(v.subjectList())
}

func (v *ListView[T]) subjectName(names map[int]string, it T) string {
	if v.subjectOf == nil {
		return ""
	}
	return names[v.subjectOf(it)]
}
