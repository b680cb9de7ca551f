package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fennwick/brasserie/pkg/router"
)

func ok(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }

func TestNamedRouteAndURL(t *testing.T) {
	r := router.New()
	r.Get("/orders/{id}", "orders.show", ok)

	path, found := r.Path("orders.show")
	if !found || path != "/orders/{id}" {
		t.Errorf("Path = (%q, %v)", path, found)
	}

	url, err := r.URL("orders.show", map[string]string{"id": "7"})
	if err != nil || url != "/orders/7" {
		t.Errorf("URL = (%q, %v)", url, err)
	}

	if _, err := r.URL("orders.show", nil); err == nil {
		t.Error("expected error for missing params")
	}
	if _, err := r.URL("nope", nil); err == nil {
		t.Error("expected error for unknown route")
	}
}

func TestGroupPrefixAndMiddleware(t *testing.T) {
	var order []string
	mw := func(tag string) router.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				order = append(order, tag)
				next.ServeHTTP(w, req)
			})
		}
	}

	r := router.New()
	api := r.Group("/api", mw("outer"))
	inner := api.Group("/orders", mw("inner"))
	inner.Get("/", "orders.index", ok)

	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(order) != 2 || order[0] != "outer" || order[1] != "inner" {
		t.Errorf("middleware order: %v", order)
	}
}

func TestRoutesListing(t *testing.T) {
	r := router.New()
	r.Get("/b", "b", ok)
	r.Post("/a", "a", ok)

	routes := r.Routes()
	if len(routes) != 2 {
		t.Fatalf("expected 2 routes, got %d", len(routes))
	}
	if routes[0].Path != "/a" || routes[0].Method != http.MethodPost {
		t.Errorf("unexpected first route: %+v", routes[0])
	}
}

func TestTrailingSlashMatches(t *testing.T) {
	r := router.New()
	r.Get("/orders/{id}", "orders.show", ok)

	for _, path := range []string{"/orders/7", "/orders/7/"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		r.Handler().ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("GET %s: expected 200, got %d", path, rec.Code)
		}
	}
}

func TestMethodNotAllowed(t *testing.T) {
	r := router.New()
	r.Get("/only-get", "only.get", ok)

	req := httptest.NewRequest(http.MethodPost, "/only-get", nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rec.Code)
	}
}
