package mirror

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aufaa4aaaaa/kasir-app/internal/pos"
	"github.com/aufaa4aaaaa/kasir-app/pkg/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	keyProducts     = "products"
	keyCart         = "cart"
	keyTransactions = "transactions"
)

// entry is one row of the mirror_entries key/value table.
type entry struct {
	Key       string    `gorm:"column:entry_key;primaryKey"`
	Payload   string    `gorm:"column:payload;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

func (entry) TableName() string { return "mirror_entries" }

// SQLite writes each store under its own key inside one transaction.
type SQLite struct {
	client *db.Client
	now    func() time.Time
}

func NewSQLite(client *db.Client) *SQLite {
	return &SQLite{client: client, now: time.Now}
}

func (s *SQLite) Save(ctx context.Context, snapshot pos.Snapshot) error {
	values := map[string]any{
		keyProducts:     snapshot.Products,
		keyCart:         snapshot.Cart,
		keyTransactions: snapshot.Transactions,
	}
	now := s.now().UTC()
	rows := make([]entry, 0, len(values))
	for _, key := range []string{keyProducts, keyCart, keyTransactions} {
		payload, err := json.Marshal(values[key])
		if err != nil {
			return fmt.Errorf("encode %s: %w", key, err)
		}
		rows = append(rows, entry{Key: key, Payload: string(payload), UpdatedAt: now})
	}

	return s.client.WithTx(ctx, func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "entry_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).Create(&rows).Error
	})
}

func (s *SQLite) Load(ctx context.Context) (*pos.Snapshot, error) {
	var rows []entry
	if err := s.client.DB().WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("read mirror entries: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrSnapshotNotFound
	}

	var snapshot pos.Snapshot
	for _, row := range rows {
		var target any
		switch row.Key {
		case keyProducts:
			target = &snapshot.Products
		case keyCart:
			target = &snapshot.Cart
		case keyTransactions:
			target = &snapshot.Transactions
		default:
			continue
		}
		if err := json.Unmarshal([]byte(row.Payload), target); err != nil {
			return nil, fmt.Errorf("decode %s: %w", row.Key, err)
		}
	}
	return &snapshot, nil
}

func (s *SQLite) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

func (s *SQLite) Close() error {
	return s.client.Close()
}
