package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/novastellaa/BE-Infokus-Studio/internal/domain/catalog"
)

type packageRow struct {
	ID          string         `db:"id"`
	CategoryID  string         `db:"category_id"`
	Name        string         `db:"name"`
	Description string         `db:"description"`
	Price       int            `db:"price"`
	ImageURLs   pq.StringArray `db:"image_urls"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

func (r *packageRow) toEntity() *catalog.Package {
	return &catalog.Package{
		ID: r.ID, CategoryID: r.CategoryID, Name: r.Name,
		Description: r.Description, Price: r.Price, ImageURLs: r.ImageURLs,
		CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
}

type CatalogRepository struct{ db *sqlx.DB }

func NewCatalogRepository(db *sqlx.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// --- Category ---

func (r *CatalogRepository) CreateCategory(ctx context.Context, c *catalog.Category) error {
	query := `INSERT INTO categories (name, created_at, updated_at) VALUES ($1, NOW(), NOW()) RETURNING id, created_at, updated_at`
	return r.db.QueryRowContext(ctx, query, c.Name).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *CatalogRepository) GetCategory(ctx context.Context, id string) (*catalog.Category, error) {
	var c catalog.Category
	err := r.db.QueryRowContext(ctx, `SELECT id, name, created_at, updated_at FROM categories WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, catalog.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("カテゴリ取得に失敗: %w", err)
	}
	return &c, nil
}

func (r *CatalogRepository) ListCategories(ctx context.Context) ([]*catalog.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, created_at, updated_at FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("カテゴリ一覧取得に失敗: %w", err)
	}
	defer rows.Close()
	var result []*catalog.Category
	for rows.Next() {
		var c catalog.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, &c)
	}
	return result, rows.Err()
}

func (r *CatalogRepository) UpdateCategory(ctx context.Context, c *catalog.Category) error {
	result, err := r.db.ExecContext(ctx, `UPDATE categories SET name = $1, updated_at = NOW() WHERE id = $2`, c.Name, c.ID)
	if err != nil {
		return fmt.Errorf("カテゴリ更新に失敗: %w", err)
	}
	return requireRow(result, catalog.ErrCategoryNotFound)
}

func (r *CatalogRepository) DeleteCategory(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("カテゴリ削除に失敗: %w", err)
	}
	return requireRow(result, catalog.ErrCategoryNotFound)
}

// --- Package ---

func (r *CatalogRepository) CreatePackage(ctx context.Context, p *catalog.Package) error {
	query := `INSERT INTO packages (category_id, name, description, price, image_urls, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, NOW(), NOW()) RETURNING id, created_at, updated_at`
	return r.db.QueryRowContext(ctx, query, p.CategoryID, p.Name, p.Description, p.Price, pq.Array(p.ImageURLs)).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *CatalogRepository) GetPackage(ctx context.Context, id string) (*catalog.Package, error) {
	var row packageRow
	query := `SELECT id, category_id, name, description, price, image_urls, created_at, updated_at FROM packages WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, catalog.ErrPackageNotFound
		}
		return nil, fmt.Errorf("パッケージ取得に失敗: %w", err)
	}
	return row.toEntity(), nil
}

func (r *CatalogRepository) ListPackages(ctx context.Context, categoryID string) ([]*catalog.Package, error) {
	var rows []packageRow
	var err error
	if categoryID != "" {
		err = r.db.SelectContext(ctx, &rows, `SELECT id, category_id, name, description, price, image_urls, created_at, updated_at FROM packages WHERE category_id = $1 ORDER BY name`, categoryID)
	} else {
		err = r.db.SelectContext(ctx, &rows, `SELECT id, category_id, name, description, price, image_urls, created_at, updated_at FROM packages ORDER BY name`)
	}
	if err != nil {
		return nil, fmt.Errorf("パッケージ一覧取得に失敗: %w", err)
	}
	result := make([]*catalog.Package, len(rows))
	for i := range rows {
		result[i] = rows[i].toEntity()
	}
	return result, nil
}

func (r *CatalogRepository) UpdatePackage(ctx context.Context, p *catalog.Package) error {
	query := `UPDATE packages SET category_id = $1, name = $2, description = $3, price = $4, image_urls = $5, updated_at = NOW() WHERE id = $6`
	result, err := r.db.ExecContext(ctx, query, p.CategoryID, p.Name, p.Description, p.Price, pq.Array(p.ImageURLs), p.ID)
	if err != nil {
		return fmt.Errorf("パッケージ更新に失敗: %w", err)
	}
	return requireRow(result, catalog.ErrPackageNotFound)
}

func (r *CatalogRepository) DeletePackage(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM packages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("パッケージ削除に失敗: %w", err)
	}
	return requireRow(result, catalog.ErrPackageNotFound)
}

// --- Addon ---

func (r *CatalogRepository) CreateAddon(ctx context.Context, a *catalog.Addon) error {
	query := `INSERT INTO addons (name, price, created_at, updated_at) VALUES ($1, $2, NOW(), NOW()) RETURNING id, created_at, updated_at`
	return r.db.QueryRowContext(ctx, query, a.Name, a.Price).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

func (r *CatalogRepository) GetAddon(ctx context.Context, id string) (*catalog.Addon, error) {
	var a catalog.Addon
	err := r.db.QueryRowContext(ctx, `SELECT id, name, price, created_at, updated_at FROM addons WHERE id = $1`, id).
		Scan(&a.ID, &a.Name, &a.Price, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, catalog.ErrAddonNotFound
		}
		return nil, fmt.Errorf("オプション取得に失敗: %w", err)
	}
	return &a, nil
}

func (r *CatalogRepository) ListAddons(ctx context.Context) ([]*catalog.Addon, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, price, created_at, updated_at FROM addons ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("オプション一覧取得に失敗: %w", err)
	}
	defer rows.Close()
	var result []*catalog.Addon
	for rows.Next() {
		var a catalog.Addon
		if err := rows.Scan(&a.ID, &a.Name, &a.Price, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, &a)
	}
	return result, rows.Err()
}

func (r *CatalogRepository) UpdateAddon(ctx context.Context, a *catalog.Addon) error {
	result, err := r.db.ExecContext(ctx, `UPDATE addons SET name = $1, price = $2, updated_at = NOW() WHERE id = $3`, a.Name, a.Price, a.ID)
	if err != nil {
		return fmt.Errorf("オプション更新に失敗: %w", err)
	}
	return requireRow(result, catalog.ErrAddonNotFound)
}

func (r *CatalogRepository) DeleteAddon(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM addons WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("オプション削除に失敗: %w", err)
	}
	return requireRow(result, catalog.ErrAddonNotFound)
}

// --- TimeOption ---

func (r *CatalogRepository) CreateTimeOption(ctx context.Context, t *catalog.TimeOption) error {
	query := `INSERT INTO time_options (start_time, end_time, created_at, updated_at) VALUES ($1, $2, NOW(), NOW()) RETURNING id, created_at, updated_at`
	return r.db.QueryRowContext(ctx, query, t.StartTime, t.EndTime).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

func (r *CatalogRepository) GetTimeOption(ctx context.Context, id string) (*catalog.TimeOption, error) {
	var t catalog.TimeOption
	err := r.db.QueryRowContext(ctx, `SELECT id, start_time, end_time, created_at, updated_at FROM time_options WHERE id = $1`, id).
		Scan(&t.ID, &t.StartTime, &t.EndTime, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, catalog.ErrTimeOptionNotFound
		}
		return nil, fmt.Errorf("時間枠取得に失敗: %w", err)
	}
	return &t, nil
}

func (r *CatalogRepository) ListTimeOptions(ctx context.Context) ([]*catalog.TimeOption, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, start_time, end_time, created_at, updated_at FROM time_options ORDER BY start_time`)
	if err != nil {
		return nil, fmt.Errorf("時間枠一覧取得に失敗: %w", err)
	}
	defer rows.Close()
	var result []*catalog.TimeOption
	for rows.Next() {
		var t catalog.TimeOption
		if err := rows.Scan(&t.ID, &t.StartTime, &t.EndTime, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, &t)
	}
	return result, rows.Err()
}

func (r *CatalogRepository) UpdateTimeOption(ctx context.Context, t *catalog.TimeOption) error {
	result, err := r.db.ExecContext(ctx, `UPDATE time_options SET start_time = $1, end_time = $2, updated_at = NOW() WHERE id = $3`, t.StartTime, t.EndTime, t.ID)
	if err != nil {
		return fmt.Errorf("時間枠更新に失敗: %w", err)
	}
	return requireRow(result, catalog.ErrTimeOptionNotFound)
}

func (r *CatalogRepository) DeleteTimeOption(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM time_options WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("時間枠削除に失敗: %w", err)
	}
	return requireRow(result, catalog.ErrTimeOptionNotFound)
}

func requireRow(result sql.Result, notFound error) error {
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return notFound
	}
	return nil
}

var _ catalog.Repository = (*CatalogRepository)(nil)
