package slot

import (
	"context"
	"errors"

	"github.com/novastellaa/BE-Infokus-Studio/internal/domain/txn"
)

var (
	ErrSlotUnavailable = errors.New("指定の時間枠は既に予約されています")
)

// Claim は (日付, 時間枠) の排他的な占有を表す
// 非キャンセル予約は同一の (日付, 時間枠) を同時に2件保持できない
type Claim struct {
	Date          string // YYYY-MM-DD
	TimeOptionID  string
	ReservationID string
}

// Allocator は時間枠の割り当てを管理するインターフェース
// Claim が唯一の直列化ポイントであり、同一キーへの同時要求は
// 高々1件しか成功しない
type Allocator interface {
	// Claim は時間枠を占有する（トランザクション必須）
	// 既に占有済みの場合は ErrSlotUnavailable を返す
	Claim(ctx context.Context, tx txn.Tx, c *Claim) error

	// Release は時間枠を解放する（トランザクション必須、冪等）
	Release(ctx context.Context, tx txn.Tx, date, timeOptionID string) error

	// Occupied は指定日の占有済み時間枠ID一覧を時間枠順で返す
	Occupied(ctx context.Context, date string) ([]string, error)
}

// LockKey は分散ロック用のキーを生成する
func LockKey(date, timeOptionID string) string {
	return "slot:" + date + ":" + timeOptionID
}
