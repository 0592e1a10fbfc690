// Package api sets up and starts the API
// server with routing, middleware, and Swagger documentation.
package api

import (
	"fmt"
	"net/http"
	"time"

	_ "github.com/forkful/forkful/docs"
	"github.com/forkful/forkful/internal/api/middleware"
	"github.com/forkful/forkful/internal/api/routes/auth"
	"github.com/forkful/forkful/internal/api/routes/ping"
	"github.com/forkful/forkful/internal/api/routes/recipes"
	"github.com/forkful/forkful/internal/api/routes/users"
	"github.com/forkful/forkful/internal/env"
	"github.com/forkful/forkful/internal/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

const (
	serverPort = 8080

	rateLimitRequests = 120
	rateLimitWindow   = time.Minute
)

func addDocs(r *chi.Mux, serverAddr string) {
	swagger := httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s/api/swagger/doc.json", serverAddr)),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("none"),
		httpSwagger.DomID("swagger-ui"),
	)

	r.Mount("/api/swagger", http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		// Handle preflight
		if req.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		// Allow GET to serve Swagger
		if req.Method == http.MethodGet {
			swagger.ServeHTTP(w, req)
			return
		}

		// Block anything else
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}))
}

func addRoutes(router *chi.Mux) {
	router.Method(http.MethodGet, "/metrics", metrics.Handler())

	router.Route("/api", func(r chi.Router) {
		r.Get("/ping", ping.HandlePing)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/session", auth.HandleCreateSession)
			r.Post("/logout", auth.HandleLogout)
		})

		r.Route("/recipes", func(r chi.Router) {
			r.Use(middleware.RequireUser)

			r.Get("/", recipes.HandleListRecipes)
			r.Post("/", recipes.HandleCreateRecipe)
			r.Get("/{id}", recipes.HandleGetRecipe)
			r.Put("/{id}", recipes.HandleUpdateRecipe)
			r.Delete("/{id}", recipes.HandleDeleteRecipe)
			r.Post("/{id}/rate", recipes.HandleRateRecipe)
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(middleware.RequireUser)

			r.Get("/my-recipes", users.HandleMyRecipes)
			r.Get("/favorites", users.HandleListFavorites)
			r.Post("/favorites", users.HandleAddFavorite)
			r.Delete("/favorites/{id}", users.HandleRemoveFavorite)
		})
	})
}

// Start godoc
//
//	@title						Forkful API
//	@version					1.0
//	@description				API Server for the Forkful recipe-sharing application.
//
//	@securityDefinitions.apikey	AccessTokenCookie
//	@in							cookie
//	@name						access
//
//	@host						localhost:8080
//	@BasePath					/api
func Start(env *env.Env) error {
	router := chi.NewRouter()
	router.Use(middleware.AddRequestID)
	router.Use(middleware.LogRequest(env.Logger))
	router.Use(middleware.InjectEnv(env))
	router.Use(middleware.AddCors)
	router.Use(httprate.LimitByIP(rateLimitRequests, rateLimitWindow))

	addRoutes(router)
	addDocs(router, fmt.Sprintf("0.0.0.0:%d", serverPort))
	http.Handle("/", router)

	env.Logger.Info(fmt.Sprintf("Listening at 0.0.0.0:%d", serverPort))
	env.Logger.Info(fmt.Sprintf("Swagger UI available at http://0.0.0.0:%d/api/swagger/index.html", serverPort))
	return http.ListenAndServe(fmt.Sprintf(":%d", serverPort), nil)
}
