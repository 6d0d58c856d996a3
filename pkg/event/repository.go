package event

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrEventNotFound = errors.New("event not found")

type Repository interface {
	StoreEvent(ctx context.Context, userId int, event Event) (string, error)
	GetEvent(ctx context.Context, userId int, uid string) (Event, error)
	GetEvents(ctx context.Context, userId int, from, to time.Time) ([]Event, error)
	UpdateEvent(ctx context.Context, userId int, event Event) error
	DeleteEvent(ctx context.Context, userId int, uid string) error
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) StoreEvent(ctx context.Context, userId int, event Event) (string, error) {
	query := `INSERT INTO calendar_event (
						uid,
						title,
						start_time,
						end_time,
						all_day,
						company_id,
						company_name,
						created_at,
						user_id
					) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	uid := uuid.New().String()
	_, err := r.db.Exec(ctx, query,
		uid,
		event.Title,
		event.StartTime.UnixMilli(),
		event.EndTime.UnixMilli(),
		event.AllDay,
		event.CompanyId,
		event.CompanyName,
		event.CreatedAt.UnixMilli(),
		userId,
	)
	if err != nil {
		log.Errorf("could not store calendar event: %v", err)
		return "", err
	}
	return uid, nil
}

func (r *RepositoryImpl) GetEvent(ctx context.Context, userId int, uid string) (Event, error) {
	query := `SELECT uid, title, start_time, end_time, all_day, company_id, company_name, created_at
				FROM calendar_event WHERE uid = $1 AND user_id = $2`
	rows, err := r.db.Query(ctx, query, uid, userId)
	if err != nil {
		log.Errorf("could not query calendar event %s: %v", uid, err)
		return Event{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		return Event{}, ErrEventNotFound
	}
	event, err := scanEvent(rows.Scan)
	if err != nil {
		return Event{}, err
	}
	return event, nil
}

func (r *RepositoryImpl) GetEvents(ctx context.Context, userId int, from, to time.Time) ([]Event, error) {
	// Return all events overlapping the given period: events that start
	// before the end of the period and end after its start.
	query := `SELECT uid, title, start_time, end_time, all_day, company_id, company_name, created_at
				FROM calendar_event
				WHERE user_id = $1
					AND start_time <= $2
					AND end_time >= $3
				ORDER BY start_time`

	rows, err := r.db.Query(ctx, query, userId, to.UnixMilli(), from.UnixMilli())
	if err != nil {
		log.Errorf("could not query calendar events: %v", err)
		return nil, err
	}
	defer rows.Close()

	events := make([]Event, 0, 10)
	for rows.Next() {
		event, err := scanEvent(rows.Scan)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

func (r *RepositoryImpl) UpdateEvent(ctx context.Context, userId int, event Event) error {
	query := `UPDATE calendar_event SET title = $1, start_time = $2, end_time = $3, all_day = $4
				WHERE uid = $5 AND user_id = $6`
	tag, err := r.db.Exec(ctx, query,
		event.Title,
		event.StartTime.UnixMilli(),
		event.EndTime.UnixMilli(),
		event.AllDay,
		event.UID,
		userId,
	)
	if err != nil {
		log.Errorf("could not update calendar event %s: %v", event.UID, err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrEventNotFound
	}
	return nil
}

func (r *RepositoryImpl) DeleteEvent(ctx context.Context, userId int, uid string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM calendar_event WHERE uid = $1 AND user_id = $2`, uid, userId)
	if err != nil {
		log.Errorf("could not delete calendar event %s: %v", uid, err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrEventNotFound
	}
	return nil
}

func scanEvent(scan func(dest ...any) error) (Event, error) {
	var event Event
	var startMillis, endMillis, createdMillis int64
	err := scan(
		&event.UID,
		&event.Title,
		&startMillis,
		&endMillis,
		&event.AllDay,
		&event.CompanyId,
		&event.CompanyName,
		&createdMillis,
	)
	if err != nil {
		log.Errorf("could not scan calendar event row: %v", err)
		return Event{}, err
	}
	event.StartTime = time.UnixMilli(startMillis)
	event.EndTime = time.UnixMilli(endMillis)
	event.CreatedAt = time.UnixMilli(createdMillis)
	return event, nil
}
