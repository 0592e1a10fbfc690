// Package metrics exposes Prometheus counters for recipe activity.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RecipesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "forkful_recipes_created_total",
		Help: "Number of recipes created.",
	})

	RecipesDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "forkful_recipes_deleted_total",
		Help: "Number of recipes deleted.",
	})

	RatingsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "forkful_ratings_submitted_total",
		Help: "Number of rating upserts accepted.",
	})

	FavoritesAdded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "forkful_favorites_added_total",
		Help: "Number of favorites added.",
	})

	FavoritesRemoved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "forkful_favorites_removed_total",
		Help: "Number of favorites removed.",
	})
)

func Handler() http.Handler {
	return promhttp.Handler()
}
