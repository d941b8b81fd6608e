// Package metrics holds the process-wide prometheus collectors.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ConnectedChannels = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "taskbuddy_ws_connected_channels",
		Help: "Number of live websocket channels.",
	})

	EventsIn = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "taskbuddy_ws_events_in_total",
		Help: "Inbound websocket events by event name.",
	}, []string{"event"})

	EventsOut = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "taskbuddy_ws_events_out_total",
		Help: "Outbound websocket broadcasts by event name.",
	}, []string{"event"})

	ChatCapRejections = promauto.NewCounter(prometheus.CounterOpts{
		Name: "taskbuddy_chat_cap_rejections_total",
		Help: "Chat posts rejected because the room hit its history cap.",
	})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "taskbuddy_http_requests_total",
		Help: "HTTP requests by method and status class.",
	}, []string{"method", "status"})
)

// Handler serves the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
