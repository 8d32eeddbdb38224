// Package middleware gin中间件
package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kovan/bookshop/pkg/metrics"
)

// Metrics HTTP请求指标采集中间件
// 按method/path/status维度记录请求数和耗时
// 使用FullPath()而非原始URL,避免路径参数导致标签基数爆炸
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		metrics.HTTPRequestsInProgress.Inc()

		c.Next()

		metrics.HTTPRequestsInProgress.Dec()

		path := c.FullPath()
		if path == "" {
			path = "unmatched" // 404等未命中路由的请求
		}
		status := strconv.Itoa(c.Writer.Status())

		metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, path).
			Observe(time.Since(start).Seconds())
	}
}
