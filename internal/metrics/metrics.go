// Package metrics экспортирует Prometheus-метрики сессии редактирования.
// Метрики:
// * voxel_ops_total{op} — counter, выполненные операции по видам
// * voxel_blocks — gauge, число блоков в активном меше
// * voxel_op_duration_seconds{op} — histogram, длительность операций
package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// EditMetrics содержит метрики операций над мешом
type EditMetrics struct {
	opsTotal   *prometheus.CounterVec
	blocks     prometheus.Gauge
	opDuration *prometheus.HistogramVec
}

// NewEditMetrics создаёт метрики и регистрирует их в дефолтном регистре
func NewEditMetrics(namespace string) *EditMetrics {
	em := &EditMetrics{
		opsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ops_total",
			Help:      "Общее число операций редактирования по видам.",
		}, []string{"op"}),
		blocks: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "blocks",
			Help:      "Число блоков в активном меше.",
		}),
		opDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "op_duration_seconds",
			Help:      "Длительность операций редактирования.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"op"}),
	}
	prometheus.MustRegister(em.opsTotal, em.blocks, em.opDuration)
	return em
}

// ObserveOp фиксирует выполненную операцию и её длительность
func (em *EditMetrics) ObserveOp(op string, d time.Duration) {
	em.opsTotal.WithLabelValues(op).Inc()
	em.opDuration.WithLabelValues(op).Observe(d.Seconds())
}

// SetBlocks обновляет число блоков активного меша
func (em *EditMetrics) SetBlocks(n int) {
	em.blocks.Set(float64(n))
}

// ServeEndpoint поднимает HTTP-эндпоинт /metrics на указанном порту.
// Запускается в отдельной горутине; ошибки сервера отдаются в канал.
func ServeEndpoint(port int) <-chan error {
	errs := make(chan error, 1)
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		errs <- http.ListenAndServe(fmt.Sprintf(":%d", port), mux)
	}()
	return errs
}
