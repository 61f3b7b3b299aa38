package cart

import (
	"context"
	"encoding/json"
	"fmt"

	repo "app/internal/repository"
)

// RepoPersister はスナップショットをDBに置くPersister実装。
type RepoPersister struct {
	snapshots repo.CartSnapshotRepository
}

func NewRepoPersister(snapshots repo.CartSnapshotRepository) *RepoPersister {
	return &RepoPersister{snapshots: snapshots}
}

func (p *RepoPersister) Save(ctx context.Context, sessionID string, s Snapshot) error {
	data, err := json.Marshal(s.Items)
	if err != nil {
		return fmt.Errorf("cart: marshal items: %w", err)
	}
	return p.snapshots.Save(ctx, sessionID, string(data), s.TotalItems, s.TotalAmount)
}

func (p *RepoPersister) Load(ctx context.Context, sessionID string) (Snapshot, bool, error) {
	itemsJSON, totalItems, totalAmount, found, err := p.snapshots.Load(ctx, sessionID)
	if err != nil || !found {
		return Snapshot{}, false, err
	}

	var items []Item
	if err := json.Unmarshal([]byte(itemsJSON), &items); err != nil {
		return Snapshot{}, false, fmt.Errorf("cart: unmarshal items: %w", err)
	}

	return Snapshot{
		Items:       items,
		TotalItems:  totalItems,
		TotalAmount: totalAmount,
	}, true, nil
}

func (p *RepoPersister) Delete(ctx context.Context, sessionID string) error {
	return p.snapshots.Delete(ctx, sessionID)
}
