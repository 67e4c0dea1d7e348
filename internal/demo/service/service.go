// Package service holds the user business logic of the demo application.
package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/melt-go/melt/internal/demo/repository"
)

var ErrUserNotFound = errors.New("user not found")

//melt::service
type UserService struct {
	//melt::autowired
	userRepository *repository.UserRepository
}

// SaveUser validates and stores a new user
func (s *UserService) SaveUser(name string) (repository.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return repository.User{}, errors.New("user name is empty")
	}
	return s.userRepository.Save(name), nil
}

func (s *UserService) User(id int) (repository.User, error) {
	u, ok := s.userRepository.FindByID(id)
	if !ok {
		return repository.User{}, fmt.Errorf("user %d: %w", id, ErrUserNotFound)
	}
	return u, nil
}

// Names returns the names of every user in id order
func (s *UserService) Names() []string {
	users := s.userRepository.FindAll()
	names := make([]string, len(users))
	for i, u := range users {
		names[i] = u.Name
	}
	return names
}

func (s *UserService) Count() int {
	return s.userRepository.Count()
}

func (s *UserService) Search(fragment string, limit int, activeOnly bool) []repository.User {
	return s.userRepository.Search(fragment, limit, activeOnly)
}

func (s *UserService) SetActive(id int, active bool) error {
	if !s.userRepository.SetActive(id, active) {
		return fmt.Errorf("user %d: %w", id, ErrUserNotFound)
	}
	return nil
}

// Ready reports whether the repository was injected
func (s *UserService) Ready() bool {
	return s.userRepository != nil
}
