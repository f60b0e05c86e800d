package model

import "time"

// ChangeSet is the light version of a commit, used to filter before loading the full commit.
type ChangeSet struct {
	ID   string
	Date time.Time
}

func NewChangeSet(id string, date time.Time) ChangeSet {
	return ChangeSet{
		ID:   id,
		Date: date,
	}
}

func (c ChangeSet) Equal(other ChangeSet) bool {
	return c.ID == other.ID && c.Date.Equal(other.Date)
}
