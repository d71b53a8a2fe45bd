package perc

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bluenviron/rtpperc/pkg/liberrors"
)

// Metrics are the Prometheus metrics of one or more engines.
type Metrics struct {
	encrypted prometheus.Counter
	decrypted prometheus.Counter
	failures  *prometheus.CounterVec
}

// NewMetrics allocates Metrics and registers them into reg.
// If reg is nil, metrics are not registered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		encrypted: f.NewCounter(prometheus.CounterOpts{
			Namespace: "rtpperc",
			Subsystem: "engine",
			Name:      "encrypted_packets_total",
			Help:      "Number of encrypted payloads.",
		}),
		decrypted: f.NewCounter(prometheus.CounterOpts{
			Namespace: "rtpperc",
			Subsystem: "engine",
			Name:      "decrypted_packets_total",
			Help:      "Number of decrypted payloads.",
		}),
		failures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rtpperc",
			Subsystem: "engine",
			Name:      "failures_total",
			Help:      "Number of failed operations, by operation and reason.",
		}, []string{"operation", "reason"}),
	}
}

func failureReason(err error) string {
	switch {
	case errors.As(err, &liberrors.ErrReplayDetected{}):
		return "replay"
	case errors.As(err, &liberrors.ErrSessionNotKeyed{}):
		return "not_keyed"
	case errors.As(err, &liberrors.ErrSessionClosed{}):
		return "closed"
	case errors.As(err, &liberrors.ErrPayloadTooLarge{}):
		return "payload_too_large"
	case errors.As(err, &liberrors.ErrPayloadTooSmall{}):
		return "payload_too_small"
	case errors.As(err, &liberrors.ErrBufferTooSmall{}):
		return "buffer_too_small"
	case errors.As(err, &liberrors.ErrProtectionFailed{}):
		return "protection_failed"
	}
	return "other"
}

func (m *Metrics) onEncrypt(err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.failures.WithLabelValues("encrypt", failureReason(err)).Inc()
		return
	}
	m.encrypted.Inc()
}

func (m *Metrics) onDecrypt(err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.failures.WithLabelValues("decrypt", failureReason(err)).Inc()
		return
	}
	m.decrypted.Inc()
}
