package services

import (
	"context"
	"time"

	"eventboard/internal/domain"
)

type mockUserRepository struct {
	users map[int64]*domain.User
	err   error
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.err != nil {
		return m.err
	}
	user.ID = int64(len(m.users) + 1)
	if m.users == nil {
		m.users = map[int64]*domain.User{}
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockUserRepository) List(ctx context.Context, ids []int64, from, size int) ([]*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*domain.User
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

func (m *mockUserRepository) Delete(ctx context.Context, id int64) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.users, id)
	return nil
}

type mockEventRepository struct {
	events      map[int64]*domain.Event
	searchOut   []*domain.Event
	hasCategory bool
	updated     *domain.Event
	err         error
}

func (m *mockEventRepository) Create(ctx context.Context, event *domain.Event) error {
	if m.err != nil {
		return m.err
	}
	event.ID = int64(len(m.events) + 1)
	if m.events == nil {
		m.events = map[int64]*domain.Event{}
	}
	m.events[event.ID] = event
	return nil
}

func (m *mockEventRepository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	ev, ok := m.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return ev, nil
}

func (m *mockEventRepository) GetByIDAndInitiator(ctx context.Context, id, initiatorID int64) (*domain.Event, error) {
	ev, err := m.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ev.InitiatorID != initiatorID {
		return nil, domain.ErrNotFound
	}
	return ev, nil
}

func (m *mockEventRepository) Update(ctx context.Context, event *domain.Event) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.events[event.ID]; !ok {
		return domain.ErrNotFound
	}
	m.events[event.ID] = event
	m.updated = event
	return nil
}

func (m *mockEventRepository) Search(ctx context.Context, filter domain.EventFilter, from, size int) ([]*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.searchOut, nil
}

func (m *mockEventRepository) ListByInitiator(ctx context.Context, initiatorID int64, from, size int) ([]*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*domain.Event
	for _, ev := range m.events {
		if ev.InitiatorID == initiatorID {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (m *mockEventRepository) ExistsByCategory(ctx context.Context, categoryID int64) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	return m.hasCategory, nil
}

type mockCategoryRepository struct {
	categories map[int64]*domain.Category
	err        error
}

func (m *mockCategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	if m.err != nil {
		return m.err
	}
	category.ID = int64(len(m.categories) + 1)
	if m.categories == nil {
		m.categories = map[int64]*domain.Category{}
	}
	m.categories[category.ID] = category
	return nil
}

func (m *mockCategoryRepository) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	if m.err != nil {
		return nil, m.err
	}
	c, ok := m.categories[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func (m *mockCategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.categories[category.ID]; !ok {
		return domain.ErrNotFound
	}
	m.categories[category.ID] = category
	return nil
}

func (m *mockCategoryRepository) Delete(ctx context.Context, id int64) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.categories[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.categories, id)
	return nil
}

func (m *mockCategoryRepository) List(ctx context.Context, from, size int) ([]*domain.Category, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*domain.Category
	for _, c := range m.categories {
		out = append(out, c)
	}
	return out, nil
}

type mockRequestRepository struct {
	byRequester map[int64][]*domain.ParticipationRequest
	byEvent     map[int64][]*domain.ParticipationRequest
	byID        map[int64]*domain.ParticipationRequest
	err         error
}

func (m *mockRequestRepository) ListByRequester(ctx context.Context, requesterID int64) ([]*domain.ParticipationRequest, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.byRequester[requesterID], nil
}

func (m *mockRequestRepository) ListByEvent(ctx context.Context, eventID int64) ([]*domain.ParticipationRequest, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.byEvent[eventID], nil
}

func (m *mockRequestRepository) GetByIDAndRequester(ctx context.Context, id, requesterID int64) (*domain.ParticipationRequest, error) {
	if m.err != nil {
		return nil, m.err
	}
	req, ok := m.byID[id]
	if !ok || req.RequesterID != requesterID {
		return nil, domain.ErrNotFound
	}
	return req, nil
}

type mockStatsClient struct {
	views    map[int64]int64
	hits     []string
	hitErr   error
	viewsErr error
}

func (m *mockStatsClient) Hit(ctx context.Context, uri, ip string) error {
	m.hits = append(m.hits, uri)
	return m.hitErr
}

func (m *mockStatsClient) Views(ctx context.Context, start, end time.Time, eventIDs []int64, unique bool) (map[int64]int64, error) {
	if m.viewsErr != nil {
		return nil, m.viewsErr
	}
	return m.views, nil
}

type mockNotifier struct {
	published []int64
	rejected  []int64
	err       error
}

func (m *mockNotifier) EventPublished(ctx context.Context, initiator *domain.User, event *domain.Event) error {
	m.published = append(m.published, event.ID)
	return m.err
}

func (m *mockNotifier) EventRejected(ctx context.Context, initiator *domain.User, event *domain.Event) error {
	m.rejected = append(m.rejected, event.ID)
	return m.err
}
