// Package controller exposes the demo application over HTTP.
package controller

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/melt-go/melt/internal/demo/repository"
	"github.com/melt-go/melt/internal/demo/service"
	"github.com/melt-go/melt/pkg/melt"
)

// Diagnostic marks controllers that only report on the running server.
//
//melt::stereotype -Of=Controller
type Diagnostic struct{}

//melt::controller
type UserController struct {
	//melt::autowired
	userService *service.UserService
}

//melt::get /hello
func (c *UserController) Hello() string {
	return "Hello from UserController!"
}

//melt::get /users
func (c *UserController) Users() string {
	return "User List: [" + strings.Join(c.userService.Names(), ", ") + "]"
}

//melt::get /users/count
func (c *UserController) Count() string {
	return fmt.Sprintf("Total Users: %d", c.userService.Count())
}

//melt::get /users/search
//melt::query limit -Default=10
//melt::query active -Optional
func (c *UserController) Search(name string, limit int, active bool) string {
	return formatUsers(c.userService.Search(name, limit, active))
}

//melt::get /users/{id}
func (c *UserController) User(id int) (string, error) {
	u, err := c.userService.User(id)
	if errors.Is(err, service.ErrUserNotFound) {
		return "", melt.ErrNotFound(err.Error())
	}
	if err != nil {
		return "", err
	}
	return formatUser(u), nil
}

//melt::route patch /users/{id}/status
//melt::query active
func (c *UserController) SetStatus(ctx context.Context, id int, active bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := c.userService.SetActive(id, active)
	if errors.Is(err, service.ErrUserNotFound) {
		return melt.ErrNotFound(err.Error())
	}
	return err
}

//melt::post /users
//melt::body name
func (c *UserController) Create(name string) (*melt.Response, error) {
	u, err := c.userService.SaveUser(name)
	if err != nil {
		return nil, melt.ErrBadRequest(err.Error())
	}
	return melt.Created(formatUser(u)), nil
}

//melt::marked Diagnostic
type TestController struct {
	//melt::autowired
	userService *service.UserService
}

//melt::get /test
func (c *TestController) Test() string {
	return "Test Controller Works!"
}

//melt::get /health
func (c *TestController) Health() string {
	if !c.userService.Ready() {
		return "Server is starting"
	}
	return "Server is healthy!"
}

func formatUser(u repository.User) string {
	status := "inactive"
	if u.Active {
		status = "active"
	}
	return fmt.Sprintf("%d:%s (%s)", u.ID, u.Name, status)
}

func formatUsers(users []repository.User) string {
	parts := make([]string, len(users))
	for i, u := range users {
		parts[i] = formatUser(u)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
