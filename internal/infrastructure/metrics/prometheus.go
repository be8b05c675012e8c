// Package metrics provides Prometheus metrics for observability.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "vidcatalog"

var (
	// GatewayOperationsTotal tracks object store gateway calls.
	// Labels:
	//   - operation: list, get, put, delete, presign
	//   - status: success, error
	GatewayOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gateway_operations_total",
			Help:      "Total number of object store gateway operations",
		},
		[]string{"operation", "status"},
	)

	// CacheOperationsTotal tracks metadata cache operations.
	// Labels:
	//   - operation: get, set, delete
	//   - status: hit, miss, success, error
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_operations_total",
			Help:      "Total number of metadata cache operations",
		},
		[]string{"operation", "status"},
	)

	// SingleflightRequestsTotal tracks singleflight behavior on metadata reads.
	// Labels:
	//   - result: initiated (new execution), shared (reused result)
	SingleflightRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "singleflight_requests_total",
			Help:      "Total number of singleflight requests",
		},
		[]string{"result"},
	)

	// ListingsTotal tracks aggregator listing requests.
	// Labels:
	//   - status: success, degraded, error
	ListingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "listings_total",
			Help:      "Total number of video listing requests",
		},
		[]string{"status"},
	)
)

// Gateway operation constants.
const (
	GatewayOpList    = "list"
	GatewayOpGet     = "get"
	GatewayOpPut     = "put"
	GatewayOpDelete  = "delete"
	GatewayOpPresign = "presign"
)

// Gateway status constants.
const (
	GatewayStatusSuccess = "success"
	GatewayStatusError   = "error"
)

// Cache operation status constants.
const (
	CacheStatusHit     = "hit"
	CacheStatusMiss    = "miss"
	CacheStatusSuccess = "success"
	CacheStatusError   = "error"
)

// Cache operation type constants.
const (
	CacheOpGet    = "get"
	CacheOpSet    = "set"
	CacheOpDelete = "delete"
)

// Listing status constants.
const (
	ListingStatusSuccess  = "success"
	ListingStatusDegraded = "degraded"
	ListingStatusError    = "error"
)

// Singleflight result constants.
const (
	SingleflightInitiated = "initiated"
	SingleflightShared    = "shared"
)
