package school

import (
	"context"
	"fmt"
	"log"

	"github.com/iamsahilydv/reno-test/storage"
)

// OrphanLister 孤儿清扫依赖的仓库操作
type OrphanLister interface {
	ListImageIdentifiers(ctx context.Context) ([]string, error)
}

// OrphanSweeper 清理存储中不再被任何记录引用的图片。
// 孤儿是补偿删除失败的可容忍产物，清扫永远不触碰仍被引用的资源。
type OrphanSweeper struct {
	repo  OrphanLister
	store storage.Provider
}

// NewOrphanSweeper 创建孤儿清扫器
func NewOrphanSweeper(repo OrphanLister, store storage.Provider) *OrphanSweeper {
	return &OrphanSweeper{repo: repo, store: store}
}

// Sweep 列出存储与引用集合的差集并删除，返回删除数量
func (s *OrphanSweeper) Sweep(ctx context.Context) (int, error) {
	stored, err := s.store.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list stored assets: %w", err)
	}

	referenced, err := s.repo.ListImageIdentifiers(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list referenced assets: %w", err)
	}

	referencedSet := make(map[string]struct{}, len(referenced))
	for _, id := range referenced {
		referencedSet[id] = struct{}{}
	}

	removed := 0
	for _, identifier := range stored {
		if _, ok := referencedSet[identifier]; ok {
			continue
		}
		if err := s.store.DeleteWithContext(ctx, identifier); err != nil {
			log.Printf("Failed to delete orphan asset '%s' from storage '%s': %v", identifier, s.store.Name(), err)
			continue
		}
		removed++
	}

	return removed, nil
}
