package devstore

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("not found")

// Table is a mutex-guarded in-memory table of rows identified by an int primary key.
type Table[T any] struct {
	mutex sync.RWMutex
	pk    int
	rows  map[int]T
	id    func(*T) *int
}

func newTable[T any](id func(*T) *int) *Table[T] {
	return &Table[T]{rows: make(map[int]T), id: id}
}

// Insert assigns the next primary key to `row` and stores it.
func (t *Table[T]) Insert(row T) T {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	t.pk++
	*t.id(&row) = t.pk
	t.rows[t.pk] = row
	return row
}

func (t *Table[T]) Get(id int) (T, error) {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	row, ok := t.rows[id]
	if !ok {
		return row, ErrNotFound
	}
	return row, nil
}

// Update runs `fn` on a copy of the row and stores the result unless `fn` fails.
func (t *Table[T]) Update(id int, fn func(*T) error) (T, error) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	row, ok := t.rows[id]
	if !ok {
		return row, ErrNotFound
	}
	if err := fn(&row); err != nil {
		return row, err
	}
	*t.id(&row) = id
	t.rows[id] = row
	return row, nil
}

func (t *Table[T]) Delete(id int) error {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if _, ok := t.rows[id]; !ok {
		return ErrNotFound
	}
	delete(t.rows, id)
	return nil
}

// Filter returns the rows matching `pred`, ordered by primary key.
func (t *Table[T]) Filter(pred func(T) bool) []T {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	ids := make([]int, 0, len(t.rows))
	for id, row := range t.rows {
		if pred == nil || pred(row) {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)

	res := make([]T, 0, len(ids))
	for _, id := range ids {
		res = append(res, t.rows[id])
	}
	return res
}

func (t *Table[T]) Len() int {
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	return len(t.rows)
}
