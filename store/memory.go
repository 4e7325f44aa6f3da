package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"lossdesk/models"
)

// Memory is a mutex-guarded in-memory Store. It backs the unit and HTTP
// tests and the DB-less dev mode, and mirrors the Postgres semantics: one
// row per request identity, first write wins, incremental surrogate ids.
type Memory struct {
	mu         sync.Mutex
	nextID     uint
	byID       map[uint]models.Report
	byIdentity map[string]uint
	hook       InsertHook
}

// NewMemory returns an empty in-memory store. hook may be nil.
func NewMemory(hook InsertHook) *Memory {
	return &Memory{
		nextID:     1,
		byID:       make(map[uint]models.Report),
		byIdentity: make(map[string]uint),
		hook:       hook,
	}
}

func (s *Memory) Create(ctx context.Context, in Input) (models.Report, error) {
	sub, identity, err := resolveIdentity(in)
	if err != nil {
		return models.Report{}, err
	}

	s.mu.Lock()
	if id, ok := s.byIdentity[identity]; ok {
		row := s.byID[id]
		s.mu.Unlock()
		return row, nil
	}
	row := models.Report{
		ID:              s.nextID,
		RequestIdentity: identity,
		Manager:         sub.Manager,
		Restaurant:      sub.Restaurant,
		Reason:          sub.Reason,
		Amount:          sub.Amount,
		StartsAt:        sub.Start,
		EndsAt:          sub.End,
		Comment:         sub.Comment,
		CreatedAt:       time.Now().UnixMilli(),
	}
	s.nextID++
	s.byID[row.ID] = row
	s.byIdentity[identity] = row.ID
	s.mu.Unlock()

	// hook runs outside the lock so a slow consumer cannot stall writers
	if s.hook != nil {
		s.hook(row)
	}
	return row, nil
}

func (s *Memory) List(ctx context.Context) ([]models.Report, error) {
	s.mu.Lock()
	rows := make([]models.Report, 0, len(s.byID))
	for _, r := range s.byID {
		rows = append(rows, r)
	}
	s.mu.Unlock()

	// newest first; ids break the tie for rows created in the same millisecond
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].CreatedAt != rows[j].CreatedAt {
			return rows[i].CreatedAt > rows[j].CreatedAt
		}
		return rows[i].ID > rows[j].ID
	})
	return rows, nil
}

func (s *Memory) Update(ctx context.Context, id uint, in Input) (models.Report, error) {
	sub, _, err := resolveIdentity(in)
	if err != nil {
		return models.Report{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.byID[id]
	if !ok {
		return models.Report{}, ErrNotFound
	}
	row.Manager = sub.Manager
	row.Restaurant = sub.Restaurant
	row.Reason = sub.Reason
	row.Amount = sub.Amount
	row.StartsAt = sub.Start
	row.EndsAt = sub.End
	row.Comment = sub.Comment
	s.byID[id] = row
	return row, nil
}

func (s *Memory) Delete(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.byID[id]
	if !ok {
		return nil
	}
	delete(s.byID, id)
	delete(s.byIdentity, row.RequestIdentity)
	return nil
}
