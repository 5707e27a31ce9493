package models

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore 是放在記憶體裡的假 db（STORE=memory 與測試用）
// 不做外鍵檢查，cascade 交給 service 層
type MemoryStore struct {
	mu         sync.RWMutex
	seq        int
	organizers map[string]memRow[Organizer]
	events     map[string]memRow[Event]
	tickets    map[string]memRow[Ticket]
}

type memRow[T any] struct {
	seq int // 插入順序，GetAll 依此排序
	v   T
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		organizers: map[string]memRow[Organizer]{},
		events:     map[string]memRow[Event]{},
		tickets:    map[string]memRow[Ticket]{},
	}
}

func (m *MemoryStore) Repositories() Repositories {
	return Repositories{
		Organizers: &memOrganizerRepo{m},
		Events:     &memEventRepo{m},
		Tickets:    &memTicketRepo{m},
		Ping:       func(context.Context) error { return nil },
	}
}

func sorted[T any](rows map[string]memRow[T], keep func(T) bool) []T {
	list := make([]memRow[T], 0, len(rows))
	for _, r := range rows {
		if keep == nil || keep(r.v) {
			list = append(list, r)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].seq < list[j].seq })
	out := make([]T, 0, len(list))
	for _, r := range list {
		out = append(out, r.v)
	}
	return out
}

/* -------------------- Organizers -------------------- */

type memOrganizerRepo struct{ m *MemoryStore }

func (r *memOrganizerRepo) GetAll(context.Context) ([]Organizer, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	return sorted(r.m.organizers, nil), nil
}

func (r *memOrganizerRepo) GetByID(_ context.Context, id string) (Organizer, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	row, ok := r.m.organizers[id]
	if !ok {
		return Organizer{}, ErrNotFound
	}
	return row.v, nil
}

func (r *memOrganizerRepo) GetByEmail(_ context.Context, email string) (Organizer, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	for _, row := range r.m.organizers {
		if row.v.Email == email {
			return row.v, nil
		}
	}
	return Organizer{}, ErrNotFound
}

func (r *memOrganizerRepo) emailTaken(email, exceptID string) bool {
	for id, row := range r.m.organizers {
		if id != exceptID && row.v.Email == email {
			return true
		}
	}
	return false
}

func (r *memOrganizerRepo) Create(_ context.Context, o *Organizer) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.organizers[o.ID]; ok || r.emailTaken(o.Email, "") {
		return ErrDuplicate
	}
	r.m.seq++
	r.m.organizers[o.ID] = memRow[Organizer]{seq: r.m.seq, v: *o}
	return nil
}

func (r *memOrganizerRepo) Update(_ context.Context, o *Organizer) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	row, ok := r.m.organizers[o.ID]
	if !ok {
		return ErrNotFound
	}
	if r.emailTaken(o.Email, o.ID) {
		return ErrDuplicate
	}
	row.v = *o
	r.m.organizers[o.ID] = row
	return nil
}

func (r *memOrganizerRepo) Delete(_ context.Context, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.organizers[id]; !ok {
		return ErrNotFound
	}
	delete(r.m.organizers, id)
	return nil
}

/* -------------------- Events -------------------- */

type memEventRepo struct{ m *MemoryStore }

func (r *memEventRepo) GetAll(context.Context) ([]Event, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	return sorted(r.m.events, nil), nil
}

func (r *memEventRepo) ListByOrganizer(_ context.Context, organizerID string) ([]Event, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	return sorted(r.m.events, func(e Event) bool { return e.OrganizerID == organizerID }), nil
}

func (r *memEventRepo) GetByID(_ context.Context, id string) (Event, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	row, ok := r.m.events[id]
	if !ok {
		return Event{}, ErrNotFound
	}
	return row.v, nil
}

func (r *memEventRepo) Create(_ context.Context, e *Event) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.events[e.ID]; ok {
		return ErrDuplicate
	}
	r.m.seq++
	r.m.events[e.ID] = memRow[Event]{seq: r.m.seq, v: *e}
	return nil
}

func (r *memEventRepo) Update(_ context.Context, e *Event) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	row, ok := r.m.events[e.ID]
	if !ok {
		return ErrNotFound
	}
	row.v = *e
	r.m.events[e.ID] = row
	return nil
}

func (r *memEventRepo) Delete(_ context.Context, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.events[id]; !ok {
		return ErrNotFound
	}
	delete(r.m.events, id)
	return nil
}

/* -------------------- Tickets -------------------- */

type memTicketRepo struct{ m *MemoryStore }

func (r *memTicketRepo) GetAll(context.Context) ([]Ticket, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	return sorted(r.m.tickets, nil), nil
}

func (r *memTicketRepo) GetByID(_ context.Context, id string) (Ticket, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	row, ok := r.m.tickets[id]
	if !ok {
		return Ticket{}, ErrNotFound
	}
	return row.v, nil
}

func (r *memTicketRepo) Create(_ context.Context, t *Ticket) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.tickets[t.ID]; ok {
		return ErrDuplicate
	}
	r.m.seq++
	r.m.tickets[t.ID] = memRow[Ticket]{seq: r.m.seq, v: *t}
	return nil
}

func (r *memTicketRepo) Update(_ context.Context, t *Ticket) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	row, ok := r.m.tickets[t.ID]
	if !ok {
		return ErrNotFound
	}
	row.v = *t
	r.m.tickets[t.ID] = row
	return nil
}

func (r *memTicketRepo) Delete(_ context.Context, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.tickets[id]; !ok {
		return ErrNotFound
	}
	delete(r.m.tickets, id)
	return nil
}

func (r *memTicketRepo) DeleteByEvent(_ context.Context, eventID string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for id, row := range r.m.tickets {
		if row.v.EventID == eventID {
			delete(r.m.tickets, id)
		}
	}
	return nil
}
