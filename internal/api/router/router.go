package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "storefront/docs" // registers the swagger spec

	"storefront/internal/api/cart"
	"storefront/internal/api/order"
	"storefront/internal/api/payment"
	"storefront/internal/api/product"
	"storefront/internal/api/response"
	"storefront/internal/api/review"
	"storefront/internal/api/user"
	"storefront/internal/messages"
	"storefront/internal/pkg/cache"
	"storefront/internal/pkg/logger"
	"storefront/internal/pkg/middleware"
)

// Handlers are the endpoint groups mounted under /api.
type Handlers struct {
	User    *user.Handler
	Product *product.Handler
	Cart    *cart.Handler
	Order   *order.Handler
	Payment *payment.Handler
	Review  *review.Handler
}

// Options carry the cross-cutting dependencies of the router.
type Options struct {
	Tokens          middleware.TokenValidator
	Cache           cache.Client
	RateLimit       int
	RateLimitWindow time.Duration
	SwaggerHost     string
}

// NewRouter builds the chi router: global middlewares, health check, docs and the /api tree.
// Catalog reads, signup and login are public; everything else needs a bearer token.
func NewRouter(h Handlers, opts Options, log logger.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recoverer(log))
	r.Use(middleware.RateLimiter(opts.Cache, opts.RateLimit, opts.RateLimitWindow, log))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.JSON(w, http.StatusNotFound, response.Message(messages.EndpointNotFound))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.JSON(w, http.StatusMethodNotAllowed, response.Message(http.StatusText(http.StatusMethodNotAllowed)))
	})

	r.Get("/ping", PingHandler)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://"+opts.SwaggerHost+"/swagger/doc.json"),
	))

	auth := middleware.NewAuthMiddleware(opts.Tokens)

	r.Route("/api", func(api chi.Router) {
		api.Route("/user", func(ur chi.Router) {
			ur.Post("/login", h.User.LoginHandler)
			ur.Post("/", h.User.CreateUserHandler)
			ur.Get("/", h.User.ListUsersHandler)
			ur.Get("/{id}", h.User.GetUserHandler)

			ur.With(auth).Put("/{id}", h.User.UpdateUserHandler)
			ur.With(auth).Delete("/{id}", h.User.DeleteUserHandler)
		})

		api.Route("/product", func(pr chi.Router) {
			pr.Get("/", h.Product.ListProductsHandler)
			pr.Get("/{id}", h.Product.GetProductByIDHandler)

			pr.Group(func(g chi.Router) {
				g.Use(auth)
				g.Post("/", h.Product.CreateProductHandler)
				g.Put("/{id}", h.Product.UpdateProductHandler)
				g.Delete("/{id}", h.Product.DeleteProductHandler)
			})
		})

		api.Group(func(g chi.Router) {
			g.Use(auth)

			g.Route("/cart", func(cr chi.Router) {
				cr.Get("/", h.Cart.ListCartsHandler)
				cr.Get("/me", h.Cart.MyCartHandler)
				cr.Post("/add", h.Cart.AddProductHandler)
				cr.Get("/{id}", h.Cart.GetCartHandler)
				cr.Put("/{id}", h.Cart.UpdateCartHandler)
				cr.Delete("/{id}", h.Cart.DeleteCartHandler)
			})

			g.Route("/order", func(or chi.Router) {
				or.Get("/", h.Order.ListOrdersHandler)
				or.Post("/", h.Order.CreateOrderHandler)
				or.Get("/{id}", h.Order.GetOrderHandler)
				or.Put("/{id}", h.Order.UpdateOrderHandler)
				or.Delete("/{id}", h.Order.DeleteOrderHandler)
			})

			g.Route("/payment", func(pr chi.Router) {
				pr.Get("/", h.Payment.ListPaymentsHandler)
				pr.Post("/", h.Payment.CreatePaymentHandler)
				pr.Get("/{id}", h.Payment.GetPaymentHandler)
				pr.Put("/{id}", h.Payment.UpdatePaymentHandler)
				pr.Delete("/{id}", h.Payment.DeletePaymentHandler)
			})

			// {productId} for reads and creates, {id} for deletes: same segment, different meaning.
			g.Route("/review", func(rr chi.Router) {
				rr.Post("/", h.Review.CreateReviewHandler)
				rr.Get("/{productId}", h.Review.ListReviewsHandler)
				rr.Post("/{productId}", h.Review.CreateReviewHandler)
				rr.Delete("/{productId}", deleteReview(h.Review))
			})
		})
	})

	return r
}

// deleteReview exposes the shared path segment to the delete handler as "id".
func deleteReview(h *review.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rctx := chi.RouteContext(r.Context())
		rctx.URLParams.Add("id", chi.URLParam(r, "productId"))
		h.DeleteReviewHandler(w, r)
	}
}

// PingHandler godoc
// @Summary Health check
// @Tags health
// @Produce plain
// @Success 200 {string} string "pong"
// @Router /ping [get]
func PingHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("pong"))
}
