// Package http 提供HTTP服务器功能
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Server HTTP服务器
type Server struct {
	server  *http.Server
	handler http.Handler
	config  ServerConfig
	logger  *zap.Logger
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port         int
	Timeout      time.Duration
	MaxBodyBytes int64
}

// DefaultServerConfig 默认服务器配置
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Port:         8501,
		Timeout:      30 * time.Second,
		MaxBodyBytes: 64 << 10,
	}
}

// NewServer 创建HTTP服务器
func NewServer(config ServerConfig, handler *Handler, logger *zap.Logger) *Server {
	if config.MaxBodyBytes <= 0 {
		config.MaxBodyBytes = DefaultServerConfig().MaxBodyBytes
	}

	mux := http.NewServeMux()
	handler.Register(mux)

	// 创建中间件链
	chain := Chain(
		LoggerMiddleware(logger),                  // 1. 日志中间件（生成请求ID）
		RecoveryMiddleware(logger),                // 2. 恢复中间件（捕获panic）
		SecurityHeadersMiddleware,                 // 3. 安全头中间件
		RequestSizeMiddleware(config.MaxBodyBytes), // 4. 请求大小限制
		TimeoutMiddleware(config.Timeout),         // 5. 超时中间件
	)
	wrapped := chain(mux)

	writeTimeout := config.Timeout
	if writeTimeout > 0 {
		writeTimeout += 5 * time.Second
	}

	return &Server{
		server: &http.Server{
			Addr:         fmt.Sprintf(":%d", config.Port),
			Handler:      wrapped,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: writeTimeout,
			IdleTimeout:  120 * time.Second,
		},
		handler: wrapped,
		config:  config,
		logger:  logger.Named("server"),
	}
}

// Start 启动服务器
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server",
		zap.String("addr", s.server.Addr),
		zap.String("websocket", "ws://localhost"+s.server.Addr+"/ws"),
	)

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Stop 停止服务器
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s.logger.Info("Shutting down HTTP server")

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	return nil
}

// Addr 返回服务器地址
func (s *Server) Addr() string {
	return s.server.Addr
}

// Handler 返回包含中间件的处理器
func (s *Server) Handler() http.Handler {
	return s.handler
}
