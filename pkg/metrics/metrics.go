// Package metrics 提供基于Prometheus的指标收集
//
// 核心概念：
// - Counter（计数器）：只增不减的累计值，如HTTP请求总数、订单总数
// - Gauge（仪表盘）：可增可减的瞬时值，如正在处理的请求数
// - Histogram（直方图）：观测值的分布，自动计算分位数（P50、P90、P99）
//
// 命名规范：
// - Counter以_total结尾（http_requests_total）
// - Histogram以单位结尾（http_request_duration_seconds）
// - 避免高基数标签（不要用user_id做标签）
//
// 使用方式：
//
//	metrics.InitMetrics()
//	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// initialized 标记是否已初始化（防止重复注册）
	initialized bool

	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数（Counter）
	// 标签：method（GET/POST）、path（路由模板）、status（200/404/500）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时（Histogram）
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数（Gauge）
	HTTPRequestsInProgress prometheus.Gauge

	// 业务指标

	// OrdersCreatedTotal 订单创建总数（Counter）
	OrdersCreatedTotal prometheus.Counter

	// OrdersCancelledTotal 订单取消总数（Counter）
	OrdersCancelledTotal prometheus.Counter

	// PaymentsProcessedTotal 支付处理总数（Counter）
	// 标签：status（COMPLETED/FAILED）
	PaymentsProcessedTotal *prometheus.CounterVec

	// StockAdjustmentsTotal 库存调整总数（Counter）
	// 标签：type（Purchase/Restock）
	StockAdjustmentsTotal *prometheus.CounterVec

	// 消息队列指标

	// MessagesPublishedTotal 消息发布总数（Counter）
	// 标签：exchange（交换机）、routing_key（路由键）
	MessagesPublishedTotal *prometheus.CounterVec
)

// InitMetrics 初始化所有Prometheus指标
// 必须在程序启动时调用一次，使用promauto注册到默认Registry
func InitMetrics() {
	// 防止重复初始化
	if initialized {
		return
	}
	initialized = true

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "HTTP请求耗时（秒）",
			// 桶设置：1ms到10s，覆盖大部分请求耗时范围
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_progress",
			Help: "正在处理的HTTP请求数",
		},
	)

	OrdersCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_created_total",
			Help: "订单创建总数",
		},
	)

	OrdersCancelledTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_cancelled_total",
			Help: "订单取消总数",
		},
	)

	PaymentsProcessedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payments_processed_total",
			Help: "支付处理总数",
		},
		[]string{"status"},
	)

	StockAdjustmentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stock_adjustments_total",
			Help: "库存调整总数",
		},
		[]string{"type"},
	)

	MessagesPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_published_total",
			Help: "消息发布总数",
		},
		[]string{"exchange", "routing_key"},
	)
}
