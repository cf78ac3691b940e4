package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/dev-abhisheks/recipe-app-api/internal/middleware"
)

// NewRouter assembles the API routes. Trailing slashes are stripped
// before matching, so /recipe/tags/ and /recipe/tags hit the same
// handler.
func NewRouter(users *UserHandler, tags *TagHandler, ingredients *IngredientHandler, recipes *RecipeHandler, jwtSecret string, allowedOrigins []string) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(chimiddleware.StripSlashes)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// Public account endpoints, rate limited.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(5, 10))
		r.Post("/user/create", users.HandleCreateUser)
		r.Post("/user/token", users.HandleCreateToken)
	})

	// Everything below requires a valid bearer token.
	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(jwtSecret))

		r.Get("/user/me", users.HandleMe)
		r.Patch("/user/me", users.HandleUpdateMe)

		r.Route("/recipe", func(r chi.Router) {
			r.Get("/tags", tags.HandleListTags)
			r.Patch("/tags/{id}", tags.HandleUpdateTag)
			r.Delete("/tags/{id}", tags.HandleDeleteTag)

			r.Get("/ingredients", ingredients.HandleListIngredients)
			r.Patch("/ingredients/{id}", ingredients.HandleUpdateIngredient)
			r.Delete("/ingredients/{id}", ingredients.HandleDeleteIngredient)

			r.Get("/recipes", recipes.HandleListRecipes)
			r.Post("/recipes", recipes.HandleCreateRecipe)
			r.Get("/recipes/{id}", recipes.HandleGetRecipe)
			r.Patch("/recipes/{id}", recipes.HandleUpdateRecipe)
			r.Put("/recipes/{id}", recipes.HandleReplaceRecipe)
			r.Delete("/recipes/{id}", recipes.HandleDeleteRecipe)
		})
	})

	return r
}
