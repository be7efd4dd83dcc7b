package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrCacheMiss = errors.New("キャッシュが見つかりません")
)

// OccupiedSlotCache は日付ごとの占有済み時間枠一覧のキャッシュを管理する
// 空き枠の参照は結果整合で十分なため、予約の作成・キャンセル時に無効化する
type OccupiedSlotCache struct {
	client *redis.Client
}

// NewOccupiedSlotCache は新しいキャッシュインスタンスを作成する
func NewOccupiedSlotCache(client *redis.Client) *OccupiedSlotCache {
	return &OccupiedSlotCache{client: client}
}

// Get は指定日の占有済み時間枠ID一覧をキャッシュから取得する
func (c *OccupiedSlotCache) Get(ctx context.Context, date string) ([]string, error) {
	val, err := c.client.Get(ctx, c.key(date)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("キャッシュ取得に失敗: %w", err)
	}
	var ids []string
	if err := json.Unmarshal([]byte(val), &ids); err != nil {
		return nil, fmt.Errorf("キャッシュのデコードに失敗: %w", err)
	}
	return ids, nil
}

// Set は指定日の占有済み時間枠ID一覧をキャッシュに保存する
func (c *OccupiedSlotCache) Set(ctx context.Context, date string, ids []string, ttl time.Duration) error {
	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("キャッシュのエンコードに失敗: %w", err)
	}
	if err := c.client.Set(ctx, c.key(date), data, ttl).Err(); err != nil {
		return fmt.Errorf("キャッシュ保存に失敗: %w", err)
	}
	return nil
}

// Invalidate は指定日のキャッシュを無効化する
func (c *OccupiedSlotCache) Invalidate(ctx context.Context, date string) error {
	if err := c.client.Del(ctx, c.key(date)).Err(); err != nil {
		return fmt.Errorf("キャッシュ無効化に失敗: %w", err)
	}
	return nil
}

func (c *OccupiedSlotCache) key(date string) string {
	return fmt.Sprintf("slots:occupied:%s", date)
}
