// Package session holds loaded datasets in memory between requests.
// Nothing is persisted: a session dies with the process or an explicit
// delete, and every aggregation is recomputed from the raw samples when
// its memo entry is cold.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"oilwatch-backend/internal/catalog"
	"oilwatch-backend/internal/condition"
	"oilwatch-backend/internal/dataset"
)

const defaultMemoTTL = time.Hour

var ErrNotFound = errors.New("session not found")

// Session pairs one loaded dataset with the parameter catalog and rule
// table it was loaded under.
type Session struct {
	ID        uuid.UUID           `json:"id"`
	CreatedAt time.Time           `json:"createdAt"`
	Dataset   *dataset.Dataset    `json:"dataset"`
	Params    []catalog.Parameter `json:"-"`
	Rules     condition.RuleTable `json:"-"`
	Baseline  []condition.Sample  `json:"-"`

	memo *memo
}

func (s *Session) memoKey(name string, parts ...string) string {
	key := fmt.Sprintf("%s:%s", name, s.Dataset.Version)
	for _, part := range parts {
		key += ":" + part
	}
	return key
}

// LatestState returns the per-equipment snapshot, memoized per dataset
// version.
func (s *Session) LatestState() map[string]condition.EquipmentState {
	return s.memo.get(s.memoKey("latest"), func() any {
		return condition.LatestState(s.Dataset.Samples, s.Params, s.Rules)
	}).(map[string]condition.EquipmentState)
}

// Trend returns the cumulative monthly severity trend.
func (s *Session) Trend() []condition.MonthlyTrendPoint {
	return s.memo.get(s.memoKey("trend"), func() any {
		return condition.MonthlyTrend(s.Dataset.Samples, s.Params, s.Rules)
	}).([]condition.MonthlyTrendPoint)
}

// Projections returns the time-to-limit projections for one equipment
// unit.
func (s *Session) Projections(equipment string, window int) []condition.Projection {
	key := s.memoKey("projections", equipment, fmt.Sprint(window))
	return s.memo.get(key, func() any {
		return condition.ProjectTimeToCritical(s.Dataset.Samples, equipment, s.Params, s.Rules, window)
	}).([]condition.Projection)
}

// WearRates returns the fleet-wide wear-metal growth rates.
func (s *Session) WearRates() []condition.WearRate {
	return s.memo.get(s.memoKey("wear"), func() any {
		return condition.WearRates(s.Dataset.Samples, s.Params)
	}).([]condition.WearRate)
}

// Store is the in-memory session registry.
type Store struct {
	mu       sync.RWMutex
	memoTTL  time.Duration
	sessions map[uuid.UUID]*Session
}

func NewStore() *Store {
	return &Store{
		memoTTL:  defaultMemoTTL,
		sessions: map[uuid.UUID]*Session{},
	}
}

func (st *Store) Create(ds *dataset.Dataset, params []catalog.Parameter, rules condition.RuleTable) *Session {
	session := &Session{
		ID:        uuid.New(),
		CreatedAt: time.Now().UTC(),
		Dataset:   ds,
		Params:    params,
		Rules:     rules,
		Baseline:  dataset.Historical(ds.Samples, params),
		memo:      newMemo(st.memoTTL),
	}
	st.mu.Lock()
	st.sessions[session.ID] = session
	st.mu.Unlock()
	return session
}

func (st *Store) Get(id uuid.UUID) (*Session, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	session, ok := st.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return session, nil
}

func (st *Store) Delete(id uuid.UUID) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(st.sessions, id)
	return nil
}

func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
