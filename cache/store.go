package cache

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/trezcool/estudos/core"
	"github.com/trezcool/estudos/core/contact"
	"github.com/trezcool/estudos/core/material"
	"github.com/trezcool/estudos/core/reminder"
	"github.com/trezcool/estudos/core/subject"
	apisvc "github.com/trezcool/estudos/services/api"
)

type (
	SubjectCollection  = Collection[subject.Subject, subject.Form]
	ReminderCollection = Collection[reminder.Reminder, reminder.Form]
	ContactCollection  = Collection[contact.Contact, contact.Form]
	MaterialCollection = Collection[material.Material, material.Form]
)

// Store holds one collection per resource of the current user.
type Store struct {
	Subjects  *SubjectCollection
	Reminders *ReminderCollection
	Contacts  *ContactCollection
	Materials *MaterialCollection
}

// collection is the resource-independent part of a Collection.
type collection interface {
	Resource() Resource
	Refresh(ctx context.Context) error
	Reset()
	Subscribe(fn func(Event)) (unsubscribe func())
}

func NewStore(client *apisvc.Client, logger core.Logger) *Store {
	return &Store{
		Subjects: NewCollection[subject.Subject, subject.Form](
			Subjects, client.Subjects, func(s subject.Subject) int { return s.ID }, logger,
		),
		Reminders: NewCollection[reminder.Reminder, reminder.Form](
			Reminders, client.Reminders, func(r reminder.Reminder) int { return r.ID }, logger,
		),
		Contacts: NewCollection[contact.Contact, contact.Form](
			Contacts, client.Contacts, func(c contact.Contact) int { return c.ID }, logger,
		),
		Materials: NewCollection[material.Material, material.Form](
			Materials, client.Materials, func(m material.Material) int { return m.ID }, logger,
		),
	}
}

func (s *Store) collections() []collection {
	return []collection{s.Subjects, s.Reminders, s.Contacts, s.Materials}
}

func (s *Store) collection(res Resource) collection {
	for _, c := range s.collections() {
		if c.Resource() == res {
			return c
		}
	}
	return nil
}

// RefreshAll refreshes the given collections in parallel (all of them when none is given).
// It fails with the first error; the collections that did succeed keep their new items.
func (s *Store) RefreshAll(ctx context.Context, resources ...Resource) error {
	colls := s.collections()
	if len(resources) > 0 {
		colls = make([]collection, 0, len(resources))
		for _, res := range resources {
			if c := s.collection(res); c != nil {
				colls = append(colls, c)
			}
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, c := range colls {
		c := c
		g.Go(func() error { return c.Refresh(gctx) })
	}
	return g.Wait()
}

// Subscribe registers `fn` for the events of every collection.
func (s *Store) Subscribe(fn func(Event)) (unsubscribe func()) {
	colls := s.collections()
	unsubs := make([]func(), 0, len(colls))
	for _, c := range colls {
		unsubs = append(unsubs, c.Subscribe(fn))
	}
	return func() {
		for _, unsub := range unsubs {
			unsub()
		}
	}
}

// Reset forgets every stored item.
func (s *Store) Reset() {
	for _, c := range s.collections() {
		c.Reset()
	}
}
