package catalog

import (
	"context"
	"fmt"

	entity "eyewear.GO/model/entity/catalog"
	productRepo "eyewear.GO/model/repository/catalog"
)

// SeedDB copies every kind from src into the catalog tables, keeping the
// source order as merchandising position. It returns the rows written per
// kind.
func SeedDB(ctx context.Context, repo *productRepo.ProductRepository, src Source) (map[string]int, error) {
	if err := repo.AutoMigrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	written := make(map[string]int)
	for _, d := range Descriptors() {
		items, err := src.Load(ctx, d.Kind)
		if err != nil {
			return written, err
		}
		for i, it := range items {
			p := entity.FromItem(d.Kind, i, it)
			if err := repo.Upsert(ctx, &p); err != nil {
				return written, fmt.Errorf("seed %s/%s: %w", d.Kind, it.ID, err)
			}
			written[d.Kind]++
		}
	}
	return written, nil
}
