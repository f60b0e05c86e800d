package history

import (
	"time"

	"github.com/pescuma/churn/lib/consoles"
	"github.com/pescuma/churn/lib/filters"
)

type Order int

const (
	// NewestFirst is the native git log order
	NewestFirst Order = iota
	// Reversed goes from the oldest commit to the newest
	Reversed
)

type Options struct {
	Branch string

	// From is the oldest commit to include. Empty means the first commit.
	From string
	// To is the newest commit to include. Empty means the head.
	To      string
	FromTag string
	ToTag   string

	Since *time.Time
	Until *time.Time

	Order           Order
	FirstParentOnly bool

	Paths filters.PathOptions
	// Commits are commit filter rules (see filters.ParseCommitFilter). All must match.
	Commits []string

	Console consoles.Console
}

func (o *Options) console() consoles.Console {
	if o.Console == nil {
		return consoles.NewNullConsole()
	}

	return o.Console
}

func (o *Options) acceptsDate(date time.Time) bool {
	if o.Since != nil && date.Before(*o.Since) {
		return false
	}
	if o.Until != nil && date.After(*o.Until) {
		return false
	}

	return true
}
