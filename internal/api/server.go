// Package api serves the shoppr REST API over a store.Backend.
//
// Every handler runs inside exactly one unit of work. Collection endpoints
// return the pagination envelope; single entities are returned in their full
// dict form. Errors are returned as
//
//	{"response": "error", "message": "...", "status_code": 404}
package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/shoppr/internal/store"
)

// Store is the storage the API needs. *store.Backend implements it.
type Store interface {
	View(ctx context.Context, fn func(*store.Tx) error) error
	Update(ctx context.Context, fn func(*store.Tx) error) error
	Ping(ctx context.Context) error
}

// Options configures a Server.
type Options struct {
	// CORSOrigins lists the origins allowed to call the API. Empty allows any.
	CORSOrigins []string
}

// Server holds the dependencies shared by the handlers.
type Server struct {
	store Store
	log   *zap.Logger
	opts  Options
}

// NewServer returns a server backed by st. A nil logger discards logs.
func NewServer(st Store, log *zap.Logger, opts Options) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{store: st, log: log.Named("api"), opts: opts}
}

// Routes returns the HTTP handler for the whole API.
func (s *Server) Routes() http.Handler {
	origins := s.opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, r, errRouteNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeErrorMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Get("/healthz", s.health)

	r.Get("/recipes", s.listRecipes)
	r.Post("/recipe", s.createRecipe)
	r.Get("/recipe/{id:[0-9]+}", s.getRecipe)
	r.Delete("/recipe/{id:[0-9]+}", s.deleteRecipe)
	r.Post("/recipe/{id:[0-9]+}/ingredients", s.addIngredient)

	r.Get("/baseitems", s.listBaseItems)
	r.Post("/baseitem", s.createBaseItem)
	r.Get("/baseitem/{id:[0-9]+}", s.getBaseItem)
	r.Delete("/baseitem/{id:[0-9]+}", s.deleteBaseItem)

	r.Get("/shops", s.listShops)
	r.Post("/shop", s.createShop)
	r.Get("/shop/{id:[0-9]+}", s.getShop)
	r.Delete("/shop/{id:[0-9]+}", s.deleteShop)
	r.Get("/shop/{id:[0-9]+}/baseitems", s.listShopCatalog)
	r.Post("/shop/{id:[0-9]+}/aisles", s.createAisle)

	r.Get("/aisle/{id:[0-9]+}", s.getAisle)
	r.Post("/aisle/{id:[0-9]+}/baseitems", s.stockAisle)
	r.Delete("/aisle/{id:[0-9]+}/baseitem/{baseitem_id:[0-9]+}", s.unstockAisle)

	r.Get("/meals", s.listMeals)
	r.Post("/meal", s.createMeal)
	r.Get("/meal/{id:[0-9]+}", s.getMeal)
	r.Delete("/meal/{id:[0-9]+}", s.deleteMeal)
	r.Post("/meal/{id:[0-9]+}/recipes", s.addMealRecipe)

	r.Get("/mealplans", s.listMealplans)
	r.Post("/mealplan", s.createMealplan)

	r.Get("/shoppinglists", s.listShoppingLists)
	r.Post("/shoppinglist", s.createShoppingList)
	r.Get("/shoppinglist/{id:[0-9]+}", s.getShoppingList)
	r.Delete("/shoppinglist/{id:[0-9]+}", s.deleteShoppingList)
	r.Post("/shoppinglist/{id:[0-9]+}/items", s.addShoppingListItem)
	r.Patch("/shoppinglistitem/{id:[0-9]+}", s.updateShoppingListItem)

	return r
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		s.log.Warn("health check failed", zap.Error(err))
		writeErrorMessage(w, http.StatusServiceUnavailable, "Storage unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
