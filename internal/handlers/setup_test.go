package handlers

import (
	"testing"

	"github.com/dantebozzuti27/baseline-video/internal/middleware"
	"github.com/dantebozzuti27/baseline-video/internal/testutil"
	"github.com/m1z23r/drift/pkg/drift"
	driftmw "github.com/m1z23r/drift/pkg/middleware"
)

type route struct {
	method  string
	path    string
	handler drift.HandlerFunc
	public  bool
}

// newTestClient mounts routes behind the same middleware the server uses.
func newTestClient(t *testing.T, routes ...route) *testutil.HTTPTestClient {
	t.Helper()
	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.RequestID())

	protected := app.Group("")
	protected.Use(middleware.Auth(testutil.TestJWTService()))

	for _, r := range routes {
		if r.public {
			switch r.method {
			case "GET":
				app.Get(r.path, r.handler)
			case "POST":
				app.Post(r.path, r.handler)
			}
			continue
		}
		switch r.method {
		case "GET":
			protected.Get(r.path, r.handler)
		case "POST":
			protected.Post(r.path, r.handler)
		case "PUT":
			protected.Put(r.path, r.handler)
		case "PATCH":
			protected.Patch(r.path, r.handler)
		case "DELETE":
			protected.Delete(r.path, r.handler)
		}
	}
	return testutil.NewHTTPTestClient(t, app)
}
