// Package logger 提供基于zap的结构化日志
//
// 设计说明：
// 1. 日志级别、格式、输出位置由配置文件的log段控制
// 2. 全局Logger通过Init初始化，业务代码用logger.L()获取
// 3. 未初始化时L()返回zap.NewNop()，测试代码无需准备日志环境
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var global = zap.NewNop()

// Options 日志配置
type Options struct {
	Level        string // debug | info | warn | error
	Format       string // console | json
	Output       string // stdout | stderr | 文件路径
	EnableCaller bool
}

// Init 初始化全局Logger
func Init(opts Options) error {
	level, err := zapcore.ParseLevel(opts.Level)
	if err != nil {
		return fmt.Errorf("解析日志级别失败: %w", err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.Encoding = "json"
	if opts.Format == "console" {
		cfg.Encoding = "console"
		cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}

	// 结构化日志字段规范
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.MessageKey = "msg"
	cfg.EncoderConfig.EncodeTime = zapcore.RFC3339NanoTimeEncoder

	output := opts.Output
	if output == "" {
		output = "stdout"
	}
	cfg.OutputPaths = []string{output}
	cfg.ErrorOutputPaths = []string{output}
	cfg.DisableCaller = !opts.EnableCaller

	l, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("构建Logger失败: %w", err)
	}

	global = l
	return nil
}

// L 获取全局Logger
func L() *zap.Logger {
	return global
}

// Sync 刷新缓冲的日志（在程序退出前调用）
func Sync() {
	_ = global.Sync()
}
