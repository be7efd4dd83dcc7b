package payment

import (
	"context"

	"github.com/novastellaa/BE-Infokus-Studio/internal/domain/txn"
)

// Repository は取引リポジトリのインターフェース
type Repository interface {
	// CreateHeader は取引ヘッダーを作成する（トランザクション必須）
	// 同一予約に対する2件目は ErrTransactionAlreadyExists
	CreateHeader(ctx context.Context, tx txn.Tx, t *Transaction) error

	// GetByID はIDから取引を明細込みで取得する
	GetByID(ctx context.Context, id string) (*Transaction, error)

	// GetByIDForUpdate はヘッダー行をロックして取引を明細込みで取得する
	// （トランザクション必須）。明細への判定と状態の再導出は必ず
	// このロック下のスナップショットに対して行う
	GetByIDForUpdate(ctx context.Context, tx txn.Tx, id string) (*Transaction, error)

	// GetByReservationID は予約IDから取引を明細込みで取得する
	GetByReservationID(ctx context.Context, reservationID string) (*Transaction, error)

	// GetAll は取引一覧を取得する
	GetAll(ctx context.Context, limit, offset int) ([]*Transaction, error)

	// UpdateStatus はヘッダー状態を更新する（トランザクション必須）
	UpdateStatus(ctx context.Context, tx txn.Tx, t *Transaction) error

	// CreateDetail は明細行を追加する（トランザクション必須）
	CreateDetail(ctx context.Context, tx txn.Tx, d *Detail) error

	// UpdateDetail は明細行の判定を記録する（トランザクション必須）
	UpdateDetail(ctx context.Context, tx txn.Tx, d *Detail) error
}
