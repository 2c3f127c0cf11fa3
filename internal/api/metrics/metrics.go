// Package metrics defines all custom Prometheus metrics for the API. It is
// the single source of truth for metric names, labels, and help strings.
//
// Metrics register with the default registry at import time (promauto);
// the /metrics endpoint exposes them together with the per-route HTTP
// metrics collected by the echoprometheus middleware.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "yamdb"

// SignupsTotal counts signup requests that completed successfully, i.e. the
// confirmation email was accepted for delivery. Repeat signups for an
// existing account count too.
var SignupsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of successful signup requests.",
	},
)

// TokensIssuedTotal counts confirmation-code exchanges that produced a token.
var TokensIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of bearer tokens issued.",
	},
)

// ReviewsCreatedTotal counts newly posted reviews.
// Label:
//   - score: the review score as a string ("1" … "10")
var ReviewsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reviews_created_total",
		Help:      "Total number of reviews created, by score.",
	},
	[]string{"score"},
)

// CommentsCreatedTotal counts newly posted review comments.
var CommentsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "comments_created_total",
		Help:      "Total number of review comments created.",
	},
)

// RatingCacheTotal counts rating-cache lookups.
// Label:
//   - result: "hit" (served from Redis) or "miss" (recomputed from reviews)
var RatingCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rating_cache_total",
		Help:      "Total number of title rating cache lookups, by result.",
	},
	[]string{"result"},
)
