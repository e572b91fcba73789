package group

import "context"

// Repo 定义活动的存取
type Repo interface {
	// Save 整体覆盖保存
	Save(ctx context.Context, g *Group) error
	// Get 不存在时返回 ErrGroupNotFound
	Get(ctx context.Context, id string) (*Group, error)
	Delete(ctx context.Context, id string) error
}
