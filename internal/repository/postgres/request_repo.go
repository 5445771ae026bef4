package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventboard/internal/domain"
)

type requestRepository struct {
	DB *sql.DB
}

// NewRequestRepository creates the read-side repository for participation
// requests. Writes go through the admission store.
func NewRequestRepository(db *sql.DB) domain.RequestRepository {
	return &requestRepository{DB: db}
}

func (r *requestRepository) ListByRequester(ctx context.Context, requesterID int64) ([]*domain.ParticipationRequest, error) {
	query := `
		SELECT id, created, requester_id, event_id, status
		FROM requests
		WHERE requester_id = $1
		ORDER BY created DESC
	`
	return r.scanMany(ctx, query, requesterID)
}

func (r *requestRepository) ListByEvent(ctx context.Context, eventID int64) ([]*domain.ParticipationRequest, error) {
	query := `
		SELECT id, created, requester_id, event_id, status
		FROM requests
		WHERE event_id = $1
		ORDER BY created
	`
	return r.scanMany(ctx, query, eventID)
}

func (r *requestRepository) GetByIDAndRequester(ctx context.Context, id, requesterID int64) (*domain.ParticipationRequest, error) {
	query := `
		SELECT id, created, requester_id, event_id, status
		FROM requests
		WHERE id = $1 AND requester_id = $2
	`
	req := &domain.ParticipationRequest{}
	err := r.DB.QueryRowContext(ctx, query, id, requesterID).
		Scan(&req.ID, &req.Created, &req.RequesterID, &req.EventID, &req.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return req, nil
}

func (r *requestRepository) scanMany(ctx context.Context, query string, args ...interface{}) ([]*domain.ParticipationRequest, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]*domain.ParticipationRequest, 0)
	for rows.Next() {
		req := &domain.ParticipationRequest{}
		if err := rows.Scan(&req.ID, &req.Created, &req.RequesterID, &req.EventID, &req.Status); err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}
