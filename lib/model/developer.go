package model

import (
	"fmt"
	"strings"
)

type Developer struct {
	Name  string
	Email string
}

func NewDeveloper(name string, email string) Developer {
	return Developer{
		Name:  name,
		Email: email,
	}
}

// Key identifies the developer when counting contributors.
func (d Developer) Key() string {
	return strings.TrimSpace(d.Email)
}

func (d Developer) Equal(other Developer) bool {
	return strings.TrimSpace(d.Name) == strings.TrimSpace(other.Name) &&
		strings.TrimSpace(d.Email) == strings.TrimSpace(other.Email)
}

func (d Developer) String() string {
	return fmt.Sprintf("%v <%v>", d.Name, d.Email)
}
