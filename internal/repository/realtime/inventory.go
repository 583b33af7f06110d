package realtime

import (
	"context"
	"errors"
	"sort"

	"smartlab-backend/internal/domain"
	"smartlab-backend/internal/repository"
	"smartlab-backend/internal/store"
)

type inventoryRepository struct {
	gw store.Store
}

func NewInventoryRepository(gw store.Store) repository.InventoryRepository {
	return &inventoryRepository{gw: gw}
}

func (r *inventoryRepository) Create(ctx context.Context, item *domain.InventoryItem) error {
	return r.gw.Create(ctx, store.EntityPath(store.PathInventoryItems, item.ID), item)
}

func (r *inventoryRepository) GetByID(ctx context.Context, id string) (*domain.InventoryItem, error) {
	var item domain.InventoryItem
	if err := r.gw.Read(ctx, store.EntityPath(store.PathInventoryItems, id), &item); err != nil {
		return nil, mapReadErr(err)
	}
	if item.ID == "" {
		item.ID = id
	}
	return &item, nil
}

func (r *inventoryRepository) List(ctx context.Context) ([]domain.InventoryItem, error) {
	byID := map[string]domain.InventoryItem{}
	if err := r.gw.Read(ctx, store.PathInventoryItems, &byID); err != nil {
		if errors.Is(err, store.ErrPathNotFound) {
			return nil, nil
		}
		return nil, err
	}
	items := make([]domain.InventoryItem, 0, len(byID))
	for id, item := range byID {
		if item.ID == "" {
			item.ID = id
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

func (r *inventoryRepository) Update(ctx context.Context, item *domain.InventoryItem) error {
	return r.gw.Create(ctx, store.EntityPath(store.PathInventoryItems, item.ID), item)
}

func (r *inventoryRepository) Delete(ctx context.Context, id string) error {
	return r.gw.Delete(ctx, store.EntityPath(store.PathInventoryItems, id))
}

func (r *inventoryRepository) AdjustAvailable(ctx context.Context, id string, delta int) (*domain.InventoryItem, error) {
	var updated domain.InventoryItem
	err := r.gw.Transact(ctx, store.EntityPath(store.PathInventoryItems, id), func(node store.TxNode) (interface{}, error) {
		var item domain.InventoryItem
		if err := node.Unmarshal(&item); err != nil {
			return nil, err
		}
		if item.Name == "" && item.TotalQuantity == 0 {
			return nil, domain.ErrNotFound
		}
		if item.ID == "" {
			item.ID = id
		}
		next := item.AvailableQuantity + delta
		if next < 0 {
			return nil, domain.ErrInsufficientStock
		}
		if next > item.TotalQuantity {
			return nil, domain.ErrQuantityBounds
		}
		item.AvailableQuantity = next
		updated = item
		return item, nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}
