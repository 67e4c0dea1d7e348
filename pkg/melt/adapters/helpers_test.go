package adapters

import (
	"context"
	"fmt"
	"testing"

	"github.com/melt-go/melt/pkg/melt"
	"github.com/stretchr/testify/require"
)

type greetingController struct{}

func testDispatcher(t *testing.T) *melt.Dispatcher {
	t.Helper()

	c := melt.NewCatalog()
	c.Add("test.web", melt.Definition{
		Name:    "GreetingController",
		Kind:    melt.KindStruct,
		Type:    melt.TypeOf[*greetingController](),
		Markers: []melt.Marker{melt.RestController},
		Factory: melt.Construct(func() *greetingController { return &greetingController{} }),
		Routes: []melt.RouteSpec{
			{
				Path:    "/",
				Handler: "Index",
				Invoke: func(context.Context, any, melt.Args) (any, error) {
					return "index", nil
				},
			},
			{
				Path:    "/hello/{name}",
				Handler: "Hello",
				Params: []melt.ParamSpec{
					melt.PathParam("name", melt.String),
					melt.QueryParamDefault("times", melt.Int, "1"),
				},
				Invoke: func(_ context.Context, _ any, args melt.Args) (any, error) {
					return fmt.Sprintf("hello %s x%d", args.String(0), args.Int(1)), nil
				},
			},
			{
				Method:  "POST",
				Path:    "/echo",
				Handler: "Echo",
				Params:  []melt.ParamSpec{melt.BodyParam("body")},
				Invoke: func(_ context.Context, _ any, args melt.Args) (any, error) {
					return melt.Created(args.String(0)), nil
				},
			},
		},
	})

	ctx := melt.NewContext(c)
	require.NoError(t, ctx.Refresh("test"))
	return ctx.Dispatcher()
}

type exchange struct {
	name   string
	method string
	target string
	body   string
	status int
	expect string
}

var exchanges = []exchange{
	{name: "root", method: "GET", target: "/", status: 200, expect: "index"},
	{name: "path and query", method: "GET", target: "/hello/ann?times=3", status: 200, expect: "hello ann x3"},
	{name: "default query", method: "GET", target: "/hello/bob", status: 200, expect: "hello bob x1"},
	{name: "body", method: "POST", target: "/echo", body: "ping", status: 201, expect: "ping"},
	{name: "not found", method: "DELETE", target: "/unknown", status: 404, expect: "404 Not Found: /unknown"},
	{name: "binding failure", method: "GET", target: "/hello/ann?times=many", status: 500, expect: `Internal Server Error: cannot bind query parameter "times"`},
}
