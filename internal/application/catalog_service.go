package application

import (
	"context"

	"github.com/novastellaa/BE-Infokus-Studio/internal/domain/catalog"
)

// CatalogService はカテゴリ・パッケージ・オプション・時間枠のCRUDを担当する
type CatalogService struct {
	catalogRepo catalog.Repository
}

func NewCatalogService(cr catalog.Repository) *CatalogService {
	return &CatalogService{catalogRepo: cr}
}

func (s *CatalogService) CreateCategory(ctx context.Context, name string) (*catalog.Category, error) {
	c := &catalog.Category{Name: name}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := s.catalogRepo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CatalogService) GetCategory(ctx context.Context, id string) (*catalog.Category, error) {
	return s.catalogRepo.GetCategory(ctx, id)
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]*catalog.Category, error) {
	return s.catalogRepo.ListCategories(ctx)
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id, name string) (*catalog.Category, error) {
	c, err := s.catalogRepo.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Name = name
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := s.catalogRepo.UpdateCategory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id string) error {
	return s.catalogRepo.DeleteCategory(ctx, id)
}

type PackageInput struct {
	CategoryID  string
	Name        string
	Description string
	Price       int
	ImageURLs   []string
}

func (s *CatalogService) CreatePackage(ctx context.Context, input PackageInput) (*catalog.Package, error) {
	// カテゴリの存在確認
	if _, err := s.catalogRepo.GetCategory(ctx, input.CategoryID); err != nil {
		return nil, err
	}
	p := &catalog.Package{
		CategoryID:  input.CategoryID,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		ImageURLs:   input.ImageURLs,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := s.catalogRepo.CreatePackage(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *CatalogService) GetPackage(ctx context.Context, id string) (*catalog.Package, error) {
	return s.catalogRepo.GetPackage(ctx, id)
}

func (s *CatalogService) ListPackages(ctx context.Context, categoryID string) ([]*catalog.Package, error) {
	return s.catalogRepo.ListPackages(ctx, categoryID)
}

func (s *CatalogService) UpdatePackage(ctx context.Context, id string, input PackageInput) (*catalog.Package, error) {
	p, err := s.catalogRepo.GetPackage(ctx, id)
	if err != nil {
		return nil, err
	}
	p.CategoryID = input.CategoryID
	p.Name = input.Name
	p.Description = input.Description
	p.Price = input.Price
	p.ImageURLs = input.ImageURLs
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := s.catalogRepo.UpdatePackage(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *CatalogService) DeletePackage(ctx context.Context, id string) error {
	return s.catalogRepo.DeletePackage(ctx, id)
}

func (s *CatalogService) CreateAddon(ctx context.Context, name string, price int) (*catalog.Addon, error) {
	a := &catalog.Addon{Name: name, Price: price}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if err := s.catalogRepo.CreateAddon(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *CatalogService) GetAddon(ctx context.Context, id string) (*catalog.Addon, error) {
	return s.catalogRepo.GetAddon(ctx, id)
}

func (s *CatalogService) ListAddons(ctx context.Context) ([]*catalog.Addon, error) {
	return s.catalogRepo.ListAddons(ctx)
}

func (s *CatalogService) UpdateAddon(ctx context.Context, id, name string, price int) (*catalog.Addon, error) {
	a, err := s.catalogRepo.GetAddon(ctx, id)
	if err != nil {
		return nil, err
	}
	a.Name = name
	a.Price = price
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if err := s.catalogRepo.UpdateAddon(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *CatalogService) DeleteAddon(ctx context.Context, id string) error {
	return s.catalogRepo.DeleteAddon(ctx, id)
}

func (s *CatalogService) CreateTimeOption(ctx context.Context, startTime, endTime string) (*catalog.TimeOption, error) {
	t := &catalog.TimeOption{StartTime: startTime, EndTime: endTime}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if err := s.catalogRepo.CreateTimeOption(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *CatalogService) GetTimeOption(ctx context.Context, id string) (*catalog.TimeOption, error) {
	return s.catalogRepo.GetTimeOption(ctx, id)
}

func (s *CatalogService) ListTimeOptions(ctx context.Context) ([]*catalog.TimeOption, error) {
	return s.catalogRepo.ListTimeOptions(ctx)
}

func (s *CatalogService) UpdateTimeOption(ctx context.Context, id, startTime, endTime string) (*catalog.TimeOption, error) {
	t, err := s.catalogRepo.GetTimeOption(ctx, id)
	if err != nil {
		return nil, err
	}
	t.StartTime = startTime
	t.EndTime = endTime
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if err := s.catalogRepo.UpdateTimeOption(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *CatalogService) DeleteTimeOption(ctx context.Context, id string) error {
	return s.catalogRepo.DeleteTimeOption(ctx, id)
}
