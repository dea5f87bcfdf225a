package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/phenrril/lojamobile/internal/domain"
)

var errInvalidProductID = fmt.Errorf("%w: id de producto", domain.ErrValidation)

type ProductUC struct {
	Products domain.Catalog
}

// List returns the catalogue filtered by category and free text.
func (uc *ProductUC) List(ctx context.Context, f domain.ProductFilter) ([]domain.Product, error) {
	all, err := uc.Products.List(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(f.Query))
	cat := strings.TrimSpace(f.Category)
	out := make([]domain.Product, 0, len(all))
	for _, p := range all {
		if cat != "" && !strings.EqualFold(p.Category, cat) {
			continue
		}
		if q != "" && !matchesProduct(p, q) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func matchesProduct(p domain.Product, q string) bool {
	return strings.Contains(strings.ToLower(p.Title), q) ||
		strings.Contains(strings.ToLower(p.Description), q) ||
		strings.Contains(strings.ToLower(p.Category), q)
}

func (uc *ProductUC) Get(ctx context.Context, id int64) (*domain.Product, error) {
	if id <= 0 {
		return nil, errInvalidProductID
	}
	return uc.Products.Get(ctx, id)
}

func (uc *ProductUC) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	p.Title = strings.TrimSpace(p.Title)
	if err := domain.Validate(p); err != nil {
		return nil, err
	}
	return uc.Products.Create(ctx, p)
}

func (uc *ProductUC) Update(ctx context.Context, id int64, p domain.Product) (*domain.Product, error) {
	if id <= 0 {
		return nil, errInvalidProductID
	}
	p.Title = strings.TrimSpace(p.Title)
	if err := domain.Validate(p); err != nil {
		return nil, err
	}
	p.ID = id
	return uc.Products.Update(ctx, id, p)
}

// Categories returns the distinct categories, sorted.
func (uc *ProductUC) Categories(ctx context.Context) ([]string, error) {
	all, err := uc.Products.List(ctx)
	if err != nil {
		return nil, err
	}
	seen := map[string]struct{}{}
	out := []string{}
	for _, p := range all {
		c := strings.TrimSpace(p.Category)
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	sort.Strings(out)
	return out, nil
}
