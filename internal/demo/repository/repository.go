// Package repository holds the in-memory user store of the demo application.
package repository

import (
	"sort"
	"strings"
	"sync"
)

// User is a stored user
type User struct {
	ID     int
	Name   string
	Active bool
}

//melt::repository
type UserRepository struct {
	mu     sync.RWMutex
	users  map[int]User
	nextID int
}

// NewUserRepository returns a repository seeded with three users
func NewUserRepository() *UserRepository {
	r := &UserRepository{users: map[int]User{}, nextID: 1}
	for _, name := range []string{"user1", "user2", "user3"} {
		r.Save(name)
	}
	return r
}

// Save stores a new active user and returns it
func (r *UserRepository) Save(name string) User {
	r.mu.Lock()
	defer r.mu.Unlock()

	u := User{ID: r.nextID, Name: name, Active: true}
	r.users[u.ID] = u
	r.nextID++
	return u
}

func (r *UserRepository) FindByID(id int) (User, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	return u, ok
}

// FindAll returns every user ordered by id
func (r *UserRepository) FindAll() []User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users
}

// Search returns users whose name contains fragment, at most limit of them.
// A non-positive limit means no limit.
func (r *UserRepository) Search(fragment string, limit int, activeOnly bool) []User {
	var found []User
	for _, u := range r.FindAll() {
		if activeOnly && !u.Active {
			continue
		}
		if !strings.Contains(u.Name, fragment) {
			continue
		}
		found = append(found, u)
		if limit > 0 && len(found) == limit {
			break
		}
	}
	return found
}

// SetActive updates the active flag and reports whether the user exists
func (r *UserRepository) SetActive(id int, active bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return false
	}
	u.Active = active
	r.users[id] = u
	return true
}

func (r *UserRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}
