package devstore

import (
	"github.com/trezcool/estudos/core/contact"
	"github.com/trezcool/estudos/core/material"
	"github.com/trezcool/estudos/core/reminder"
	"github.com/trezcool/estudos/core/subject"
)

// DB holds every table of the development API in process memory.
type DB struct {
	Users     *UserRepository
	Subjects  *Table[subject.Subject]
	Reminders *Table[reminder.Reminder]
	Contacts  *Table[contact.Contact]
	Materials *Table[material.Material]
}

func Open() *DB {
	return &DB{
		Users:     &UserRepository{db: newTable(func(a *Account) *int { return &a.ID })},
		Subjects:  newTable(func(s *subject.Subject) *int { return &s.ID }),
		Reminders: newTable(func(r *reminder.Reminder) *int { return &r.ID }),
		Contacts:  newTable(func(c *contact.Contact) *int { return &c.ID }),
		Materials: newTable(func(m *material.Material) *int { return &m.ID }),
	}
}

// OwnsSubject reports whether subject `subjectID` exists and belongs to user `userID`.
func (db *DB) OwnsSubject(userID, subjectID int) bool {
	subj, err := db.Subjects.Get(subjectID)
	return err == nil && subj.UserID == userID
}

func (db *DB) SubjectsOf(userID int) []subject.Subject {
	return db.Subjects.Filter(func(s subject.Subject) bool { return s.UserID == userID })
}

func (db *DB) RemindersOf(userID int) []reminder.Reminder {
	return db.Reminders.Filter(func(r reminder.Reminder) bool {
		return r.UserID == userID || db.OwnsSubject(userID, r.SubjectID)
	})
}

func (db *DB) ContactsOf(userID int) []contact.Contact {
	return db.Contacts.Filter(func(c contact.Contact) bool {
		return c.UserID == userID || db.OwnsSubject(userID, c.SubjectID)
	})
}

// MaterialsOf returns the materials of the subjects owned by `userID`; materials carry no owner of their own.
func (db *DB) MaterialsOf(userID int) []material.Material {
	return db.Materials.Filter(func(m material.Material) bool { return db.OwnsSubject(userID, m.SubjectID) })
}
