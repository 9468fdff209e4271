// ABOUTME: Product catalog reads and mutations
// ABOUTME: Catalogs grow by AddProducts as extraction results arrive
package store

import (
	"context"
	"strings"

	"github.com/harperreed/callbook/models"
)

// CatalogUpdate carries the fields to change; nil fields are left alone.
type CatalogUpdate struct {
	Name     *string
	Products *[]models.Product
}

func (s *Store) ProductCatalogs(ctx context.Context) []models.ProductCatalog {
	return s.catalogs.get(ctx, s)
}

func (s *Store) ProductCatalog(ctx context.Context, id string) (models.ProductCatalog, bool) {
	for _, c := range s.ProductCatalogs(ctx) {
		if c.ID == id {
			return c, true
		}
	}
	return models.ProductCatalog{}, false
}

func (s *Store) AddProductCatalog(ctx context.Context, name string, products []models.Product) (models.ProductCatalog, error) {
	now := s.now()
	catalog := models.ProductCatalog{
		ID:        s.newID(),
		Name:      strings.TrimSpace(name),
		Products:  s.assignProductIDs(products),
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err := s.catalogs.mutate(ctx, s, func(cur []models.ProductCatalog) ([]models.ProductCatalog, error) {
		return append(cur, catalog), nil
	})
	if err != nil {
		return models.ProductCatalog{}, err
	}
	return catalog, nil
}

func (s *Store) UpdateProductCatalog(ctx context.Context, id string, upd CatalogUpdate) (models.ProductCatalog, error) {
	return s.updateCatalog(ctx, id, func(c *models.ProductCatalog) {
		if upd.Name != nil {
			c.Name = strings.TrimSpace(*upd.Name)
		}
		if upd.Products != nil {
			c.Products = s.assignProductIDs(*upd.Products)
		}
	})
}

// AddProducts appends products to an existing catalog.
func (s *Store) AddProducts(ctx context.Context, catalogID string, products []models.Product) (models.ProductCatalog, error) {
	added := s.assignProductIDs(products)
	return s.updateCatalog(ctx, catalogID, func(c *models.ProductCatalog) {
		c.Products = append(c.Products, added...)
	})
}

func (s *Store) DeleteProductCatalog(ctx context.Context, id string) error {
	_, err := s.catalogs.mutate(ctx, s, func(cur []models.ProductCatalog) ([]models.ProductCatalog, error) {
		return removeByID(cur, id, func(c models.ProductCatalog) string { return c.ID })
	})
	return err
}

func (s *Store) updateCatalog(ctx context.Context, id string, apply func(*models.ProductCatalog)) (models.ProductCatalog, error) {
	var updated models.ProductCatalog
	_, err := s.catalogs.mutate(ctx, s, func(cur []models.ProductCatalog) ([]models.ProductCatalog, error) {
		i := indexOf(cur, id, func(c models.ProductCatalog) string { return c.ID })
		if i < 0 {
			return nil, ErrNotFound
		}
		apply(&cur[i])
		cur[i].UpdatedAt = s.now()
		updated = cur[i]
		return cur, nil
	})
	return updated, err
}

func (s *Store) assignProductIDs(products []models.Product) []models.Product {
	out := make([]models.Product, len(products))
	copy(out, products)
	for i := range out {
		if out[i].ID == "" {
			out[i].ID = s.newID()
		}
	}
	return out
}
