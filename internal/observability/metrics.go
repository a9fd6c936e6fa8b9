// Package observability provides domain-level Prometheus metrics. HTTP-level
// metrics come from the fiberprometheus middleware wired in the server.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ScoreRecomputes counts score recomputation attempts by outcome.
	ScoreRecomputes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stackbase_score_recomputes_total",
		Help: "Total number of profile score recomputations by outcome",
	}, []string{"outcome"})

	// ExportsTotal counts export downloads by format.
	ExportsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stackbase_exports_total",
		Help: "Total number of export downloads by format",
	}, []string{"format"})

	// QuestionListings counts listing queries by time-window tab.
	QuestionListings = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stackbase_question_listings_total",
		Help: "Total number of question listing queries by tab",
	}, []string{"tab"})
)
