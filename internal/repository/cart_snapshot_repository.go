package repository

import "context"

// セッション別カートのリロード用スナップショット。
type CartSnapshotRepository interface {
	Save(ctx context.Context, sessionID string, itemsJSON string, totalItems int64, totalAmount float64) error
	Load(ctx context.Context, sessionID string) (itemsJSON string, totalItems int64, totalAmount float64, found bool, err error)
	Delete(ctx context.Context, sessionID string) error
}
