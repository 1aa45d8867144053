package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// UploadsTotal counts video uploads by outcome
	UploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "video_uploads_total",
			Help: "The total number of video upload requests",
		},
		[]string{"status"},
	)

	// StreamRequestsTotal counts stream requests by outcome
	StreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "video_stream_requests_total",
			Help: "The total number of video stream requests",
		},
		[]string{"status"},
	)

	// BytesStreamed counts bytes served by the streamer
	BytesStreamed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "video_stream_bytes_total",
			Help: "The total number of video bytes streamed to clients",
		},
	)
)

// Handler exposes the Prometheus metrics endpoint as a gin handler
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
