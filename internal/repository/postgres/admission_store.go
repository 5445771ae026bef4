package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"eventboard/internal/domain"
)

type admissionStore struct {
	DB *sql.DB
}

// NewAdmissionStore creates the unit-of-work store that serializes
// confirmed-counter mutations per event.
func NewAdmissionStore(db *sql.DB) domain.AdmissionStore {
	return &admissionStore{DB: db}
}

// WithEventLock opens a transaction, locks the event row with
// SELECT ... FOR UPDATE, and runs fn. Concurrent callers on the same event
// id block on the row lock until this transaction commits or rolls back, so
// the read of confirmed_requests and the later write can never interleave
// with another caller's.
func (s *admissionStore) WithEventLock(ctx context.Context, eventID int64, fn func(ctx context.Context, tx domain.AdmissionTx) error) error {
	sqlTx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		_ = sqlTx.Rollback()
	}()

	query := `
		SELECT id, title, annotation, description, category_id, initiator_id,
		       lat, lon, created_on, event_date, published_on, paid,
		       participant_limit, request_moderation, confirmed_requests, state
		FROM events
		WHERE id = $1
		FOR UPDATE
	`
	event := &domain.Event{}
	var publishedOn sql.NullTime
	err = sqlTx.QueryRowContext(ctx, query, eventID).Scan(
		&event.ID, &event.Title, &event.Annotation, &event.Description,
		&event.CategoryID, &event.InitiatorID, &event.Lat, &event.Lon,
		&event.CreatedOn, &event.EventDate, &publishedOn, &event.Paid,
		&event.ParticipantLimit, &event.RequestModeration,
		&event.ConfirmedRequests, &event.State,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("lock event row: %w", err)
	}
	if publishedOn.Valid {
		event.PublishedOn = &publishedOn.Time
	}

	if err := fn(ctx, &admissionTx{tx: sqlTx, event: event}); err != nil {
		return err
	}
	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

type admissionTx struct {
	tx    *sql.Tx
	event *domain.Event
}

func (t *admissionTx) Event() *domain.Event {
	return t.event
}

func (t *admissionTx) HasActiveRequest(ctx context.Context, requesterID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM requests
			WHERE requester_id = $1 AND event_id = $2 AND status <> $3
		)
	`
	var exists bool
	err := t.tx.QueryRowContext(ctx, query, requesterID, t.event.ID, domain.RequestStatusCanceled).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (t *admissionTx) CountConfirmed(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM requests WHERE event_id = $1 AND status = $2`
	var count int64
	err := t.tx.QueryRowContext(ctx, query, t.event.ID, domain.RequestStatusConfirmed).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (t *admissionTx) InsertRequest(ctx context.Context, req *domain.ParticipationRequest) error {
	query := `
		INSERT INTO requests (created, requester_id, event_id, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	return t.tx.QueryRowContext(ctx, query, req.Created, req.RequesterID, req.EventID, req.Status).
		Scan(&req.ID)
}

func (t *admissionTx) GetRequest(ctx context.Context, requestID int64) (*domain.ParticipationRequest, error) {
	query := `
		SELECT id, created, requester_id, event_id, status
		FROM requests
		WHERE id = $1
	`
	req := &domain.ParticipationRequest{}
	err := t.tx.QueryRowContext(ctx, query, requestID).
		Scan(&req.ID, &req.Created, &req.RequesterID, &req.EventID, &req.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return req, nil
}

func (t *admissionTx) ListRequests(ctx context.Context, ids []int64) ([]*domain.ParticipationRequest, error) {
	query := `
		SELECT id, created, requester_id, event_id, status
		FROM requests
		WHERE id = ANY($1)
		ORDER BY id
	`
	rows, err := t.tx.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []*domain.ParticipationRequest
	for rows.Next() {
		req := &domain.ParticipationRequest{}
		if err := rows.Scan(&req.ID, &req.Created, &req.RequesterID, &req.EventID, &req.Status); err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return requests, nil
}

func (t *admissionTx) UpdateRequestStatuses(ctx context.Context, ids []int64, status domain.RequestStatus) error {
	query := `UPDATE requests SET status = $1 WHERE id = ANY($2)`
	result, err := t.tx.ExecContext(ctx, query, status, pq.Array(ids))
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected != int64(len(ids)) {
		return fmt.Errorf("expected %d requests updated, got %d", len(ids), affected)
	}
	return nil
}

func (t *admissionTx) SetConfirmedCount(ctx context.Context, count int32) error {
	query := `UPDATE events SET confirmed_requests = $1 WHERE id = $2`
	_, err := t.tx.ExecContext(ctx, query, count, t.event.ID)
	return err
}
