package catalog

import "context"

// Repository はカタログリポジトリのインターフェース
// 予約コアは Resolve 系のみを利用し、CRUDは管理画面向け
type Repository interface {
	CreateCategory(ctx context.Context, c *Category) error
	GetCategory(ctx context.Context, id string) (*Category, error)
	ListCategories(ctx context.Context) ([]*Category, error)
	UpdateCategory(ctx context.Context, c *Category) error
	DeleteCategory(ctx context.Context, id string) error

	CreatePackage(ctx context.Context, p *Package) error
	GetPackage(ctx context.Context, id string) (*Package, error)
	ListPackages(ctx context.Context, categoryID string) ([]*Package, error)
	UpdatePackage(ctx context.Context, p *Package) error
	DeletePackage(ctx context.Context, id string) error

	CreateAddon(ctx context.Context, a *Addon) error
	GetAddon(ctx context.Context, id string) (*Addon, error)
	ListAddons(ctx context.Context) ([]*Addon, error)
	UpdateAddon(ctx context.Context, a *Addon) error
	DeleteAddon(ctx context.Context, id string) error

	CreateTimeOption(ctx context.Context, t *TimeOption) error
	GetTimeOption(ctx context.Context, id string) (*TimeOption, error)
	ListTimeOptions(ctx context.Context) ([]*TimeOption, error)
	UpdateTimeOption(ctx context.Context, t *TimeOption) error
	DeleteTimeOption(ctx context.Context, id string) error
}
