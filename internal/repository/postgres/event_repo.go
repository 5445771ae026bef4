package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"eventboard/internal/domain"
)

const eventColumns = `id, title, annotation, description, category_id, initiator_id,
	lat, lon, created_on, event_date, published_on, paid,
	participant_limit, request_moderation, confirmed_requests, state`

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{DB: db}
}

func (r *eventRepository) Create(ctx context.Context, event *domain.Event) error {
	query := `
		INSERT INTO events (title, annotation, description, category_id, initiator_id,
			lat, lon, created_on, event_date, paid,
			participant_limit, request_moderation, confirmed_requests, state)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		event.Title, event.Annotation, event.Description, event.CategoryID,
		event.InitiatorID, event.Lat, event.Lon, event.CreatedOn,
		event.EventDate, event.Paid, event.ParticipantLimit,
		event.RequestModeration, event.ConfirmedRequests, event.State,
	).Scan(&event.ID)
}

func (r *eventRepository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, id))
}

func (r *eventRepository) GetByIDAndInitiator(ctx context.Context, id, initiatorID int64) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1 AND initiator_id = $2`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, id, initiatorID))
}

// Update writes every mutable field; the confirmed counter is deliberately
// excluded, it only changes under the admission store's row lock.
func (r *eventRepository) Update(ctx context.Context, event *domain.Event) error {
	query := `
		UPDATE events
		SET title = $1, annotation = $2, description = $3, category_id = $4,
		    lat = $5, lon = $6, event_date = $7, published_on = $8, paid = $9,
		    participant_limit = $10, request_moderation = $11, state = $12
		WHERE id = $13
	`
	var publishedOn sql.NullTime
	if event.PublishedOn != nil {
		publishedOn = sql.NullTime{Time: *event.PublishedOn, Valid: true}
	}
	result, err := r.DB.ExecContext(ctx, query,
		event.Title, event.Annotation, event.Description, event.CategoryID,
		event.Lat, event.Lon, event.EventDate, publishedOn, event.Paid,
		event.ParticipantLimit, event.RequestModeration, event.State, event.ID,
	)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Search builds the WHERE clause from whichever filter fields are set.
func (r *eventRepository) Search(ctx context.Context, filter domain.EventFilter, from, size int) ([]*domain.Event, error) {
	var where []string
	var args []interface{}
	n := 1

	if filter.Text != "" {
		where = append(where, fmt.Sprintf("(annotation ILIKE $%d OR description ILIKE $%d)", n, n))
		args = append(args, "%"+filter.Text+"%")
		n++
	}
	if len(filter.CategoryIDs) > 0 {
		where = append(where, fmt.Sprintf("category_id = ANY($%d)", n))
		args = append(args, pq.Array(filter.CategoryIDs))
		n++
	}
	if len(filter.InitiatorIDs) > 0 {
		where = append(where, fmt.Sprintf("initiator_id = ANY($%d)", n))
		args = append(args, pq.Array(filter.InitiatorIDs))
		n++
	}
	if len(filter.States) > 0 {
		states := make([]string, 0, len(filter.States))
		for _, st := range filter.States {
			states = append(states, string(st))
		}
		where = append(where, fmt.Sprintf("state = ANY($%d)", n))
		args = append(args, pq.Array(states))
		n++
	}
	if filter.Paid != nil {
		where = append(where, fmt.Sprintf("paid = $%d", n))
		args = append(args, *filter.Paid)
		n++
	}
	if filter.RangeStart != nil {
		where = append(where, fmt.Sprintf("event_date >= $%d", n))
		args = append(args, *filter.RangeStart)
		n++
	}
	if filter.RangeEnd != nil {
		where = append(where, fmt.Sprintf("event_date <= $%d", n))
		args = append(args, *filter.RangeEnd)
		n++
	}
	if filter.OnlyAvailable {
		where = append(where, "(participant_limit = 0 OR confirmed_requests < participant_limit)")
	}

	orderBy := "id"
	switch filter.Sort {
	case domain.EventSortDate:
		orderBy = "event_date"
	case domain.EventSortViews:
		// View counts live in the stats collaborator; callers sort
		// decorated results themselves. Keep a stable order here.
		orderBy = "id"
	}

	query := `SELECT ` + eventColumns + ` FROM events`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += fmt.Sprintf(" ORDER BY %s OFFSET $%d LIMIT $%d", orderBy, n, n+1)
	args = append(args, from, size)

	return r.scanMany(ctx, query, args...)
}

func (r *eventRepository) ListByInitiator(ctx context.Context, initiatorID int64, from, size int) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE initiator_id = $1 ORDER BY id OFFSET $2 LIMIT $3`
	return r.scanMany(ctx, query, initiatorID, from, size)
}

func (r *eventRepository) ExistsByCategory(ctx context.Context, categoryID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM events WHERE category_id = $1)`
	var exists bool
	err := r.DB.QueryRowContext(ctx, query, categoryID).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *eventRepository) scanOne(row *sql.Row) (*domain.Event, error) {
	event := &domain.Event{}
	var publishedOn sql.NullTime
	err := row.Scan(
		&event.ID, &event.Title, &event.Annotation, &event.Description,
		&event.CategoryID, &event.InitiatorID, &event.Lat, &event.Lon,
		&event.CreatedOn, &event.EventDate, &publishedOn, &event.Paid,
		&event.ParticipantLimit, &event.RequestModeration,
		&event.ConfirmedRequests, &event.State,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if publishedOn.Valid {
		event.PublishedOn = &publishedOn.Time
	}
	return event, nil
}

func (r *eventRepository) scanMany(ctx context.Context, query string, args ...interface{}) ([]*domain.Event, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*domain.Event, 0)
	for rows.Next() {
		event := &domain.Event{}
		var publishedOn sql.NullTime
		if err := rows.Scan(
			&event.ID, &event.Title, &event.Annotation, &event.Description,
			&event.CategoryID, &event.InitiatorID, &event.Lat, &event.Lon,
			&event.CreatedOn, &event.EventDate, &publishedOn, &event.Paid,
			&event.ParticipantLimit, &event.RequestModeration,
			&event.ConfirmedRequests, &event.State,
		); err != nil {
			return nil, err
		}
		if publishedOn.Valid {
			event.PublishedOn = &publishedOn.Time
		}
		events = append(events, event)
	}
	return events, rows.Err()
}
