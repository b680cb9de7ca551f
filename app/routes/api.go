package routes

import (
	"encoding/json"
	"net/http"
	"sync"

	"gorm.io/gorm"

	"github.com/fennwick/brasserie/app/controllers"
	appgraphql "github.com/fennwick/brasserie/app/graphql"
	"github.com/fennwick/brasserie/app/services"
	"github.com/fennwick/brasserie/pkg/ctx"
	"github.com/fennwick/brasserie/pkg/event"
	"github.com/fennwick/brasserie/pkg/logger"
	"github.com/fennwick/brasserie/pkg/metrics"
	"github.com/fennwick/brasserie/pkg/middleware"
	"github.com/fennwick/brasserie/pkg/response"
	"github.com/fennwick/brasserie/pkg/router"
	"github.com/fennwick/brasserie/pkg/ws"
)

// OrderHub is the websocket feed of order lifecycle events.
var OrderHub = ws.NewHub()

var hubOnce sync.Once

// RegisterAPI mounts the whole HTTP surface on the router.
func RegisterAPI(r *router.Router, db *gorm.DB) error {
	authController := controllers.NewAuthController(db)
	customerController := controllers.NewCustomerController(db)
	productController := controllers.NewProductController(db)
	orderController := controllers.NewOrderController(db)
	allergenController := controllers.NewAllergenController(db)
	dashboardController := controllers.NewDashboardController(db)

	schema, err := appgraphql.NewSchema(db)
	if err != nil {
		return err
	}

	hubOnce.Do(func() {
		go OrderHub.Run()
		listenOrderEvents(OrderHub)
	})

	r.Get("/health", "health", func(w http.ResponseWriter, _ *http.Request) {
		response.Success(w, map[string]string{"status": "ok"})
	})
	r.Handle(http.MethodGet, "/metrics", "metrics", metrics.Handler())
	r.Get("/ws/orders", "ws.orders", func(w http.ResponseWriter, req *http.Request) {
		ws.Upgrade(w, req, OrderHub)
	})

	api := r.Group("/api")
	api.Post("/auth/login", "auth.login", ctx.Wrap(authController.Login))
	api.Post("/auth/register", "auth.register", ctx.Wrap(authController.Register))

	protected := api.Group("", middleware.Auth)
	protected.Post("/auth/logout", "auth.logout", ctx.Wrap(authController.Logout))
	protected.Get("/auth/me", "auth.me", ctx.Wrap(authController.Me))

	customers := protected.Group("/customers")
	customers.Get("/", "customers.index", ctx.Wrap(customerController.Index))
	customers.Post("/", "customers.store", ctx.Wrap(customerController.Store))
	customers.Get("/list_simple", "customers.list_simple", ctx.Wrap(customerController.ListSimple))
	customers.Get("/{id}", "customers.show", ctx.Wrap(customerController.Show))
	customers.Put("/{id}", "customers.update", ctx.Wrap(customerController.Update))
	customers.Patch("/{id}", "customers.patch", ctx.Wrap(customerController.Update))
	customers.Delete("/{id}", "customers.destroy", ctx.Wrap(customerController.Destroy))

	products := protected.Group("/products")
	products.Get("/", "products.index", ctx.Wrap(productController.Index))
	products.Post("/", "products.store", ctx.Wrap(productController.Store))
	products.Get("/list_simple", "products.list_simple", ctx.Wrap(productController.ListSimple))
	products.Get("/types", "products.types", ctx.Wrap(productController.Types))
	products.Get("/suitabilities", "products.suitabilities", ctx.Wrap(productController.Suitabilities))
	products.Get("/{id}", "products.show", ctx.Wrap(productController.Show))
	products.Put("/{id}", "products.update", ctx.Wrap(productController.Update))
	products.Patch("/{id}", "products.patch", ctx.Wrap(productController.Update))
	products.Delete("/{id}", "products.destroy", ctx.Wrap(productController.Destroy))

	orders := protected.Group("/orders")
	orders.Get("/", "orders.index", ctx.Wrap(orderController.Index))
	orders.Post("/", "orders.store", ctx.Wrap(orderController.Store))
	orders.Get("/payment_methods", "orders.payment_methods", ctx.Wrap(orderController.PaymentMethods))
	orders.Get("/statuses", "orders.statuses", ctx.Wrap(orderController.Statuses))
	orders.Get("/{id}", "orders.show", ctx.Wrap(orderController.Show))
	orders.Put("/{id}", "orders.update", ctx.Wrap(orderController.Update))
	orders.Patch("/{id}", "orders.patch", ctx.Wrap(orderController.Update))
	orders.Delete("/{id}", "orders.destroy", ctx.Wrap(orderController.Destroy))
	orders.Get("/{id}/products", "orders.products", ctx.Wrap(orderController.Products))
	orders.Post("/{id}/add_product", "orders.add_product", ctx.Wrap(orderController.AddProduct))
	orders.Post("/{id}/remove_product", "orders.remove_product", ctx.Wrap(orderController.RemoveProduct))
	orders.Post("/{id}/recalculate", "orders.recalculate", ctx.Wrap(orderController.Recalculate))

	allergens := protected.Group("/allergens")
	allergens.Get("/", "allergens.index", ctx.Wrap(allergenController.Index))
	allergens.Post("/", "allergens.store", ctx.Wrap(allergenController.Store))
	allergens.Get("/types", "allergens.types", ctx.Wrap(allergenController.Types))
	allergens.Get("/all_info", "allergens.all_info", ctx.Wrap(allergenController.AllInfo))
	allergens.Get("/{id}", "allergens.show", ctx.Wrap(allergenController.Show))
	allergens.Put("/{id}", "allergens.update", ctx.Wrap(allergenController.Update))
	allergens.Patch("/{id}", "allergens.patch", ctx.Wrap(allergenController.Update))
	allergens.Delete("/{id}", "allergens.destroy", ctx.Wrap(allergenController.Destroy))

	protected.Get("/dashboard/stats", "dashboard.stats", ctx.Wrap(dashboardController.Stats))
	protected.Post("/graphql", "graphql", ctx.Wrap(appgraphql.Handler(schema)))

	return nil
}

// listenOrderEvents relays order lifecycle events onto the websocket feed.
func listenOrderEvents(hub *ws.Hub) {
	relay := func(payload interface{}) {
		data, err := json.Marshal(payload)
		if err != nil {
			logger.Warn("ws: marshal order event failed", "error", err)
			return
		}
		hub.Broadcast <- data
	}
	event.Listen(services.EventOrderCreated, relay)
	event.Listen(services.EventOrderUpdated, relay)
	event.Listen(services.EventOrderDeleted, relay)
}
