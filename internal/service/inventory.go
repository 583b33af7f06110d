package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"smartlab-backend/internal/domain"
	"smartlab-backend/internal/repository"
)

type inventoryService struct {
	inventoryRepo repository.InventoryRepository
}

func NewInventoryService(inventoryRepo repository.InventoryRepository) InventoryService {
	return &inventoryService{inventoryRepo: inventoryRepo}
}

func (s *inventoryService) AddItem(ctx context.Context, sess domain.Session, item *domain.InventoryItem) (*domain.InventoryItem, error) {
	if !sess.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if err := validateItem(item); err != nil {
		return nil, err
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.LastRestocked == "" {
		item.LastRestocked = time.Now().UTC().Format(time.RFC3339)
	}
	if err := s.inventoryRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *inventoryService) GetItem(ctx context.Context, id string) (*domain.InventoryItem, error) {
	return s.inventoryRepo.GetByID(ctx, id)
}

func (s *inventoryService) UpdateItem(ctx context.Context, sess domain.Session, item *domain.InventoryItem) error {
	if !sess.IsAdmin() {
		return domain.ErrForbidden
	}
	if err := validateItem(item); err != nil {
		return err
	}
	if _, err := s.inventoryRepo.GetByID(ctx, item.ID); err != nil {
		return err
	}
	return s.inventoryRepo.Update(ctx, item)
}

func (s *inventoryService) DeleteItem(ctx context.Context, sess domain.Session, id string) error {
	if !sess.IsAdmin() {
		return domain.ErrForbidden
	}
	if _, err := s.inventoryRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.inventoryRepo.Delete(ctx, id)
}

func (s *inventoryService) ListItems(ctx context.Context, query, category string) ([]domain.InventoryItem, error) {
	items, err := s.inventoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if query == "" && category == "" {
		return items, nil
	}
	needle := strings.ToLower(query)
	var out []domain.InventoryItem
	for _, item := range items {
		if category != "" && item.Category != category {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(item.Name), needle) &&
			!strings.Contains(strings.ToLower(item.Description), needle) {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (s *inventoryService) ListCategories(ctx context.Context) ([]string, error) {
	items, err := s.inventoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	var categories []string
	for _, item := range items {
		if item.Category != "" && !seen[item.Category] {
			seen[item.Category] = true
			categories = append(categories, item.Category)
		}
	}
	sort.Strings(categories)
	return categories, nil
}

func validateItem(item *domain.InventoryItem) error {
	if item.Name == "" {
		return fmt.Errorf("item name is required: %w", domain.ErrInvalidArgument)
	}
	if item.TotalQuantity < 1 {
		return fmt.Errorf("total quantity must be at least 1: %w", domain.ErrInvalidArgument)
	}
	if item.AvailableQuantity < 0 || item.AvailableQuantity > item.TotalQuantity {
		return fmt.Errorf("available quantity must be within [0, %d]: %w", item.TotalQuantity, domain.ErrQuantityBounds)
	}
	if item.PhysicalQuantity < 0 {
		return fmt.Errorf("physical quantity cannot be negative: %w", domain.ErrInvalidArgument)
	}
	return nil
}
