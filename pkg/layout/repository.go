package layout

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrArrangementNotFound = errors.New("arrangement not found")

// Repository persists one raw arrangement payload per user. The payload is
// stored as the serialized placement array without interpretation; decoding
// and validation happen in the engine.
type Repository interface {
	GetArrangement(ctx context.Context, userId int) ([]byte, error)
	StoreArrangement(ctx context.Context, userId int, payload []byte) error
	DeleteArrangement(ctx context.Context, userId int) error
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) GetArrangement(ctx context.Context, userId int) ([]byte, error) {
	rows, err := r.db.Query(ctx, `SELECT payload FROM dashboard_layout WHERE user_id = $1`, userId)
	if err != nil {
		log.Errorf("could not query dashboard layout for user %d: %v", userId, err)
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, ErrArrangementNotFound
	}
	var payload []byte
	if err := rows.Scan(&payload); err != nil {
		log.Errorf("could not scan dashboard layout row: %v", err)
		return nil, err
	}
	return payload, nil
}

func (r *RepositoryImpl) StoreArrangement(ctx context.Context, userId int, payload []byte) error {
	query := `INSERT INTO dashboard_layout (user_id, payload, updated_at)
				VALUES ($1, $2, $3)
				ON CONFLICT (user_id) DO UPDATE SET payload = $2, updated_at = $3`
	_, err := r.db.Exec(ctx, query, userId, payload, time.Now().UnixMilli())
	if err != nil {
		log.Errorf("could not store dashboard layout for user %d: %v", userId, err)
		return err
	}
	return nil
}

func (r *RepositoryImpl) DeleteArrangement(ctx context.Context, userId int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM dashboard_layout WHERE user_id = $1`, userId)
	if err != nil {
		log.Errorf("could not delete dashboard layout for user %d: %v", userId, err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrArrangementNotFound
	}
	return nil
}
