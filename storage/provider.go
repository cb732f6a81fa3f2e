package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound 请求的文件在存储中不存在
var ErrNotFound = errors.New("file not found in storage")

// Provider 存储提供者接口 - 依赖倒置的核心抽象
// 定义了资源存储层的基本操作，所有存储实现必须遵循此接口
type Provider interface {
	// SaveWithContext 保存文件到存储
	SaveWithContext(ctx context.Context, identifier string, file io.Reader) error

	// GetWithContext 从存储获取文件
	GetWithContext(ctx context.Context, identifier string) (io.ReadCloser, error)

	// DeleteWithContext 从存储删除文件；文件不存在不视为错误
	DeleteWithContext(ctx context.Context, identifier string) error

	// Exists 检查文件是否存在
	Exists(ctx context.Context, identifier string) (bool, error)

	// List 列出存储中的全部标识符
	List(ctx context.Context) ([]string, error)

	// Health 检查存储健康状态
	Health(ctx context.Context) error

	// Name 返回存储名称
	Name() string
}
