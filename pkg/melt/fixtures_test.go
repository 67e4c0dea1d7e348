package melt

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const auditedMarker Marker = "Audited"

type userStore interface {
	Count() int
}

type userRepository struct {
	users []string
}

func newUserRepository() *userRepository {
	return &userRepository{users: []string{"alice", "bob"}}
}

func (r *userRepository) Count() int {
	return len(r.users)
}

type userService struct {
	repo  *userRepository
	store userStore
}

func (s *userService) Names() string {
	return strings.Join(s.repo.users, ",")
}

type userController struct {
	service *userService
}

type auditLog struct {
	entries []string
}

type plainHelper struct{}

func repositoryDefinition() Definition {
	return Definition{
		Name:    "UserRepository",
		Kind:    KindStruct,
		Type:    TypeOf[*userRepository](),
		Markers: []Marker{Repository},
		Factory: Construct(newUserRepository),
	}
}

func serviceDefinition() Definition {
	return Definition{
		Name:    "UserService",
		Kind:    KindStruct,
		Type:    TypeOf[*userService](),
		Markers: []Marker{Service},
		Factory: Construct(func() *userService { return &userService{} }),
		Dependencies: []Dependency{
			Autowire("repo", func(s *userService, r *userRepository) { s.repo = r }),
		},
	}
}

func controllerDefinition() Definition {
	return Definition{
		Name:    "UserController",
		Kind:    KindStruct,
		Type:    TypeOf[*userController](),
		Markers: []Marker{RestController},
		Factory: Construct(func() *userController { return &userController{} }),
		Dependencies: []Dependency{
			Autowire("service", func(c *userController, s *userService) { c.service = s }),
		},
		Routes: userRoutes(),
	}
}

func userRoutes() []RouteSpec {
	return []RouteSpec{
		{
			Path:    "/users",
			Handler: "List",
			Invoke: func(_ context.Context, bean any, _ Args) (any, error) {
				return bean.(*userController).service.Names(), nil
			},
		},
		{
			Method:  "get",
			Path:    "/users/count",
			Handler: "Count",
			Invoke: func(_ context.Context, bean any, _ Args) (any, error) {
				return bean.(*userController).service.repo.Count(), nil
			},
		},
		{
			Method:  "GET",
			Path:    "/users/{id}",
			Handler: "Get",
			Params:  []ParamSpec{PathParam("id", Int)},
			Invoke: func(_ context.Context, _ any, args Args) (any, error) {
				return fmt.Sprintf("user %d", args.Int(0)), nil
			},
		},
		{
			Method:  "GET",
			Path:    "/users/{id}/status",
			Handler: "Status",
			Params:  []ParamSpec{PathParam("id", Long)},
			Invoke: func(_ context.Context, _ any, args Args) (any, error) {
				return fmt.Sprintf("status of %d", args.Long(0)), nil
			},
		},
		{
			Method:  "GET",
			Path:    "/search",
			Handler: "Search",
			Params: []ParamSpec{
				QueryParam("name", String, true),
				QueryParamDefault("limit", Int, "10"),
				QueryParam("active", Bool, false),
			},
			Invoke: func(_ context.Context, _ any, args Args) (any, error) {
				return fmt.Sprintf("name=%v limit=%d active=%v", args[0], args.Int(1), args[2]), nil
			},
		},
		{
			Method:  "POST",
			Path:    "/users",
			Handler: "Create",
			Params:  []ParamSpec{BodyParam("body")},
			Invoke: func(_ context.Context, _ any, args Args) (any, error) {
				return Created("created " + args.String(0)), nil
			},
		},
		{
			Method:  "GET",
			Path:    "/boom",
			Handler: "Boom",
			Invoke: func(context.Context, any, Args) (any, error) {
				panic("kaboom")
			},
		},
		{
			Method:  "GET",
			Path:    "/fail",
			Handler: "Fail",
			Invoke: func(context.Context, any, Args) (any, error) {
				return nil, errors.New("database unavailable")
			},
		},
		{
			Method:  "GET",
			Path:    "/teapot",
			Handler: "Teapot",
			Invoke: func(context.Context, any, Args) (any, error) {
				return nil, NewHttpError(418, "short and stout")
			},
		},
	}
}

func demoCatalog() *Catalog {
	c := NewCatalog()
	c.Add("app.repository", repositoryDefinition())
	c.Add("app.service", serviceDefinition())
	c.Add("app.web", controllerDefinition())
	c.Add("app.util", Definition{
		Name:    "PlainHelper",
		Kind:    KindStruct,
		Type:    TypeOf[*plainHelper](),
		Factory: Construct(func() *plainHelper { return &plainHelper{} }),
	})
	return c
}
