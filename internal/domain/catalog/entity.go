package catalog

import "time"

// Category はパッケージの分類を表す
type Category struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Package は予約可能な撮影パッケージを表す
type Package struct {
	ID          string
	CategoryID  string
	Name        string
	Description string
	Price       int
	ImageURLs   []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Addon はパッケージに追加できるオプションを表す
type Addon struct {
	ID        string
	Name      string
	Price     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TimeOption は予約可能な時間枠の選択肢を表す
type TimeOption struct {
	ID        string
	StartTime string // HH:MM
	EndTime   string // HH:MM
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate はカテゴリの検証を行う
func (c *Category) Validate() error {
	if c.Name == "" {
		return ErrNameRequired
	}
	return nil
}

// Validate はパッケージの検証を行う
func (p *Package) Validate() error {
	if p.Name == "" {
		return ErrNameRequired
	}
	if p.CategoryID == "" {
		return ErrCategoryIDRequired
	}
	if p.Price < 0 {
		return ErrInvalidPrice
	}
	return nil
}

// Validate はオプションの検証を行う
func (a *Addon) Validate() error {
	if a.Name == "" {
		return ErrNameRequired
	}
	if a.Price < 0 {
		return ErrInvalidPrice
	}
	return nil
}

// Validate は時間枠の検証を行う
func (t *TimeOption) Validate() error {
	if t.StartTime == "" || t.EndTime == "" {
		return ErrTimeRangeRequired
	}
	return nil
}
