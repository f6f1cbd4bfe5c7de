// Package metrics : prometheus счетчики жизненного цикла токенов
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	KindAccess  = "access"
	KindRefresh = "refresh"
)

var (
	TokensIssued = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "auth_tokens_issued_total",
		Help: "Signed tokens issued, by kind.",
	}, []string{"kind"})

	VerificationsFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "auth_token_verifications_failed_total",
		Help: "Rejected tokens, by kind.",
	}, []string{"kind"})

	Rotations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "auth_refresh_rotations_total",
		Help: "Refresh token rotations, by result.",
	}, []string{"result"})

	Logouts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "auth_logouts_total",
		Help: "Completed logouts.",
	})

	RecordsPurged = promauto.NewCounter(prometheus.CounterOpts{
		Name: "auth_refresh_records_purged_total",
		Help: "Expired refresh token records removed by the janitor.",
	})
)
