package handler

import (
	"context"
	"sync"
	"time"

	"order-service/internal/audit"
	"order-service/internal/domain/order"
	"order-service/internal/domain/user"
	apperrors "order-service/pkg/errors"

	"github.com/google/uuid"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*user.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, input user.CreateUserInput) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == input.Email {
			return nil, apperrors.Conflict("email already exists")
		}
	}

	now := time.Now()
	u := &user.User{
		ID:           uuid.New(),
		Email:        input.Email,
		PasswordHash: input.PasswordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.users[u.ID] = u
	return u, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, apperrors.NotFound("user not found")
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperrors.NotFound("user not found")
}

func (r *fakeUserRepo) Update(_ context.Context, id uuid.UUID, input user.UpdateUserInput) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return apperrors.NotFound("user not found")
	}
	if input.Email != nil {
		u.Email = *input.Email
	}
	if input.PasswordHash != nil {
		u.PasswordHash = *input.PasswordHash
	}
	u.UpdatedAt = time.Now()
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return apperrors.NotFound("user not found")
	}
	delete(r.users, id)
	return nil
}

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[uuid.UUID]*order.Order

	// afterGet, when set, runs after GetByID returns its copy. Tests use it
	// to interleave a concurrent status change between a handler's read and
	// its update.
	afterGet func()
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uuid.UUID]*order.Order)}
}

func (r *fakeOrderRepo) Create(_ context.Context, input order.CreateOrderInput) (*order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	o := &order.Order{
		ID:          uuid.New(),
		UserID:      input.UserID,
		Item:        input.Item,
		Quantity:    input.Quantity,
		AmountCents: input.AmountCents,
		Status:      order.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.orders[o.ID] = o
	return o, nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id uuid.UUID) (*order.Order, error) {
	r.mu.Lock()
	o, ok := r.orders[id]
	if !ok {
		r.mu.Unlock()
		return nil, apperrors.NotFound("order not found")
	}
	copied := *o
	r.mu.Unlock()

	if r.afterGet != nil {
		r.afterGet()
	}
	return &copied, nil
}

func (r *fakeOrderRepo) ListByUser(_ context.Context, userID uuid.UUID, limit, offset int) ([]*order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*order.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			copied := *o
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) List(_ context.Context, status *order.Status, limit, offset int) ([]*order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*order.Order
	for _, o := range r.orders {
		if status != nil && o.Status != *status {
			continue
		}
		copied := *o
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, id uuid.UUID, from, to order.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[id]
	if !ok || o.Status != from {
		return apperrors.InvalidTransition("order status has changed")
	}
	o.Status = to
	o.UpdatedAt = time.Now()
	return nil
}

// setStatus force-sets a status for test setup, bypassing transition rules.
func (r *fakeOrderRepo) setStatus(id uuid.UUID, status order.Status) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if o, ok := r.orders[id]; ok {
		o.Status = status
	}
}

type fakeEventQuerier struct {
	events     []*audit.Event
	err        error
	lastFilter audit.QueryFilter
}

func (q *fakeEventQuerier) Query(_ context.Context, filter audit.QueryFilter) ([]*audit.Event, error) {
	q.lastFilter = filter
	if q.err != nil {
		return nil, q.err
	}
	return q.events, nil
}

type fakeTokenGenerator struct{}

func (g *fakeTokenGenerator) Generate(userID uuid.UUID, email string) (string, error) {
	return "token-" + userID.String(), nil
}

type fakeResetStore struct {
	mu     sync.Mutex
	tokens map[string]uuid.UUID
	issued chan string
}

func newFakeResetStore() *fakeResetStore {
	return &fakeResetStore{
		tokens: make(map[string]uuid.UUID),
		issued: make(chan string, 8),
	}
}

func (s *fakeResetStore) Issue(_ context.Context, userID uuid.UUID) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token := "reset-" + uuid.New().String()
	s.tokens[token] = userID
	select {
	case s.issued <- token:
	default:
	}
	return token, nil
}

func (s *fakeResetStore) Consume(_ context.Context, token string) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	userID, ok := s.tokens[token]
	if !ok {
		return uuid.Nil, apperrors.Expired("reset token is invalid or expired")
	}
	delete(s.tokens, token)
	return userID, nil
}

type fakeNotifier struct {
	mu            sync.Mutex
	resets        []string
	confirmations []string
	sent          chan struct{}
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{sent: make(chan struct{}, 8)}
}

func (n *fakeNotifier) SendPasswordReset(to, token string) error {
	n.mu.Lock()
	n.resets = append(n.resets, to)
	n.mu.Unlock()
	select {
	case n.sent <- struct{}{}:
	default:
	}
	return nil
}

func (n *fakeNotifier) SendOrderConfirmation(to string, _ *order.Order) error {
	n.mu.Lock()
	n.confirmations = append(n.confirmations, to)
	n.mu.Unlock()
	select {
	case n.sent <- struct{}{}:
	default:
	}
	return nil
}
