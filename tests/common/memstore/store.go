//go:build unit

// Package memstore is an in-memory shared.UnitOfWork for command tests.
// Transactions are serialized on one mutex and roll back on error.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"court-reservation/internal/domain/reservation"
	"court-reservation/internal/domain/resource"
	"court-reservation/internal/infra"
	"court-reservation/internal/usecase/shared"

	"github.com/google/uuid"
)

type storedEvent struct {
	event     shared.Event
	published bool
}

type Store struct {
	mu           sync.Mutex
	resources    map[uuid.UUID]*resource.Resource
	reservations map[uuid.UUID]*reservation.Reservation
	events       []storedEvent
	nextEventID  int64

	// Txs counts Within calls, including retries the caller makes.
	Txs int
}

var _ shared.UnitOfWork = (*Store)(nil)

func New() *Store {
	return &Store{
		resources:    make(map[uuid.UUID]*resource.Resource),
		reservations: make(map[uuid.UUID]*reservation.Reservation),
	}
}

func (s *Store) PutResource(res *resource.Resource) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resources[res.ID()] = cloneResource(res)
}

func (s *Store) PutReservation(r *reservation.Reservation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reservations[r.ID()] = cloneReservation(r)
}

func (s *Store) Reservation(id uuid.UUID) (*reservation.Reservation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reservations[id]
	if !ok {
		return nil, false
	}
	return cloneReservation(r), true
}

func (s *Store) Resource(id uuid.UUID) (*resource.Resource, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.resources[id]
	if !ok {
		return nil, false
	}
	return cloneResource(r), true
}

// Reservations lists every stored reservation of a resource ordered by start.
func (s *Store) Reservations(resourceID uuid.UUID) []*reservation.Reservation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*reservation.Reservation, 0)
	for _, r := range s.reservations {
		if r.ResourceID() == resourceID {
			out = append(out, cloneReservation(r))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartAt().Before(out[j].StartAt()) })
	return out
}

// Events returns every outbox row in insertion order.
func (s *Store) Events() []shared.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]shared.Event, len(s.events))
	for i, e := range s.events {
		out[i] = e.event
	}
	return out
}

func (s *Store) EventKinds() []reservation.EventKind {
	events := s.Events()
	kinds := make([]reservation.EventKind, len(events))
	for i, e := range events {
		kinds[i] = e.Kind
	}
	return kinds
}

func (s *Store) Unpublished() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, e := range s.events {
		if !e.published {
			n++
		}
	}
	return n
}

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Txs++

	if err := ctx.Err(); err != nil {
		return err
	}

	snapshot := s.snapshot()
	if err := fn(ctx, &memTx{s: s}); err != nil {
		s.restore(snapshot)
		return err
	}
	return nil
}

func (s *Store) CommandReads() shared.CommandReads {
	return commandReads{s: s}
}

type state struct {
	resources    map[uuid.UUID]*resource.Resource
	reservations map[uuid.UUID]*reservation.Reservation
	events       []storedEvent
	nextEventID  int64
}

func (s *Store) snapshot() state {
	st := state{
		resources:    make(map[uuid.UUID]*resource.Resource, len(s.resources)),
		reservations: make(map[uuid.UUID]*reservation.Reservation, len(s.reservations)),
		events:       append([]storedEvent(nil), s.events...),
		nextEventID:  s.nextEventID,
	}
	for id, r := range s.resources {
		st.resources[id] = cloneResource(r)
	}
	for id, r := range s.reservations {
		st.reservations[id] = cloneReservation(r)
	}
	return st
}

func (s *Store) restore(st state) {
	s.resources = st.resources
	s.reservations = st.reservations
	s.events = st.events
	s.nextEventID = st.nextEventID
}

type commandReads struct {
	s *Store
}

func (c commandReads) ResourceByID(_ context.Context, id uuid.UUID) (*resource.Resource, error) {
	res, ok := c.s.Resource(id)
	if !ok {
		return nil, infra.NewNotFound("resource not found")
	}
	return res, nil
}

// memTx runs with Store.mu held.
type memTx struct {
	s *Store
}

func (t *memTx) Resources() shared.ResourceRepository       { return resourceRepo{s: t.s} }
func (t *memTx) Reservations() shared.ReservationRepository { return reservationRepo{s: t.s} }
func (t *memTx) Events() shared.EventRepository             { return eventRepo{s: t.s} }

type resourceRepo struct {
	s *Store
}

func (r resourceRepo) LockByID(_ context.Context, id uuid.UUID) (*resource.Resource, error) {
	res, ok := r.s.resources[id]
	if !ok {
		return nil, infra.NewNotFound("resource not found")
	}
	return cloneResource(res), nil
}

func (r resourceRepo) UpdateStatus(_ context.Context, res *resource.Resource) error {
	if _, ok := r.s.resources[res.ID()]; !ok {
		return infra.NewNotFound("resource not found")
	}
	r.s.resources[res.ID()] = cloneResource(res)
	return nil
}

func (r resourceRepo) CountFutureConfirmed(_ context.Context, id uuid.UUID, now time.Time) (int64, error) {
	var n int64
	for _, res := range r.s.reservations {
		if res.ResourceID() == id && res.Status() == reservation.StatusConfirmed && res.StartAt().After(now) {
			n++
		}
	}
	return n, nil
}

func (r resourceRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.s.resources[id]; !ok {
		return infra.NewNotFound("resource not found")
	}
	delete(r.s.resources, id)
	for rid, res := range r.s.reservations {
		if res.ResourceID() == id {
			delete(r.s.reservations, rid)
		}
	}
	return nil
}

type reservationRepo struct {
	s *Store
}

func (r reservationRepo) LockByID(_ context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	res, ok := r.s.reservations[id]
	if !ok {
		return nil, infra.NewNotFound("reservation not found")
	}
	return cloneReservation(res), nil
}

func (r reservationRepo) LockOverlapping(_ context.Context, resourceID uuid.UUID, start, end time.Time) ([]*reservation.Reservation, error) {
	out := make([]*reservation.Reservation, 0)
	for _, res := range r.s.reservations {
		if res.ResourceID() == resourceID && res.IsOccupying() && res.Overlaps(start, end) {
			out = append(out, cloneReservation(res))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartAt().Before(out[j].StartAt()) })
	return out, nil
}

// Create enforces the no-overlap exclusion constraint of the schema.
func (r reservationRepo) Create(_ context.Context, res *reservation.Reservation) error {
	if _, ok := r.s.reservations[res.ID()]; ok {
		return infra.RepositoryError{Kind: infra.KindDuplicateKey}
	}
	if _, ok := r.s.resources[res.ResourceID()]; !ok {
		return infra.RepositoryError{Kind: infra.KindForeignKeyViolated}
	}
	for _, other := range r.s.reservations {
		if other.ResourceID() == res.ResourceID() && other.IsOccupying() && other.Overlaps(res.StartAt(), res.EndAt()) {
			return infra.RepositoryError{Kind: infra.KindConflict}
		}
	}
	r.s.reservations[res.ID()] = cloneReservation(res)
	return nil
}

func (r reservationRepo) Save(_ context.Context, res *reservation.Reservation) error {
	if _, ok := r.s.reservations[res.ID()]; !ok {
		return infra.NewNotFound("reservation not found")
	}
	r.s.reservations[res.ID()] = cloneReservation(res)
	return nil
}

func (r reservationRepo) CancelReleasable(_ context.Context, now time.Time) ([]*reservation.Reservation, error) {
	out := make([]*reservation.Reservation, 0)
	for id, res := range r.s.reservations {
		c := cloneReservation(res)
		if c.Release(now) {
			r.s.reservations[id] = c
			out = append(out, cloneReservation(c))
		}
	}
	return out, nil
}

type eventRepo struct {
	s *Store
}

func (r eventRepo) Append(_ context.Context, event shared.Event) error {
	r.s.nextEventID++
	event.ID = r.s.nextEventID
	r.s.events = append(r.s.events, storedEvent{event: event})
	return nil
}

func (r eventRepo) LockUnpublished(_ context.Context, limit int) ([]shared.Event, error) {
	out := make([]shared.Event, 0)
	for _, e := range r.s.events {
		if len(out) >= limit {
			break
		}
		if !e.published {
			out = append(out, e.event)
		}
	}
	return out, nil
}

func (r eventRepo) MarkPublished(_ context.Context, ids []int64, _ time.Time) error {
	marked := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		marked[id] = struct{}{}
	}
	for i := range r.s.events {
		if _, ok := marked[r.s.events[i].event.ID]; ok {
			r.s.events[i].published = true
		}
	}
	return nil
}

func cloneResource(r *resource.Resource) *resource.Resource {
	return resource.Reconstruct(
		r.ID(), r.Name(), r.Description(), r.HourlyPrice(), r.Status(),
		r.OperatingHours(), r.CreatedAt(), r.UpdatedAt(),
	)
}

func cloneReservation(r *reservation.Reservation) *reservation.Reservation {
	return reservation.Reconstruct(
		r.ID(), r.ResourceID(), r.HolderID(), r.StartAt(), r.DurationUnits(),
		r.TotalPrice(), r.Status(), clonePtr(r.PaymentReference()),
		clonePtr(r.HoldExpiresAt()), clonePtr(r.PaymentCooldownUntil()),
		r.CreatedAt(), r.UpdatedAt(),
	)
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
