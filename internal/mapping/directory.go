package mapping

import (
	"strings"

	"github.com/osse101/AssignmentSync_Go/internal/notion"
)

// Directory resolves owner names to workspace user ids for people properties
type Directory struct {
	byName map[string]string
}

// NewDirectory indexes person users by case-folded name and email
func NewDirectory(users []notion.User) *Directory {
	d := &Directory{byName: make(map[string]string, len(users))}
	for _, u := range users {
		if u.Type != "person" {
			continue
		}
		if key := foldName(u.Name); key != "" {
			if _, dup := d.byName[key]; !dup {
				d.byName[key] = u.ID
			}
		}
		if u.Person != nil && u.Person.Email != "" {
			d.byName[foldName(u.Person.Email)] = u.ID
		}
	}
	return d
}

// Lookup returns the user id for a name
func (d *Directory) Lookup(name string) (string, bool) {
	if d == nil {
		return "", false
	}
	id, ok := d.byName[foldName(name)]
	return id, ok
}

func foldName(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
