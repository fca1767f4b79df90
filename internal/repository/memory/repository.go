package memory

import (
	"sync"
	"time"

	"github.com/omarshaarawi/ffhistory/internal/models"
)

type entry[T any] struct {
	value    T
	storedAt time.Time
}

// Repository holds parsed league tables for ttl after they are saved. Stored
// slices are shared with callers and must be treated as read-only.
type Repository struct {
	ttl     time.Duration
	now     func() time.Time
	rules   *entry[[]models.RosterRules]
	scores  *entry[[]models.SeasonGameRecord]
	rosters map[int]entry[[]models.TeamWeek]
	mu      sync.RWMutex
}

func NewRepository(ttl time.Duration) *Repository {
	return &Repository{
		ttl:     ttl,
		now:     time.Now,
		rosters: make(map[int]entry[[]models.TeamWeek]),
	}
}

func (r *Repository) fresh(storedAt time.Time) bool {
	return r.ttl <= 0 || r.now().Sub(storedAt) < r.ttl
}

func (r *Repository) SaveRules(rules []models.RosterRules) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules = &entry[[]models.RosterRules]{value: rules, storedAt: r.now()}
}

func (r *Repository) GetRules() ([]models.RosterRules, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.rules == nil || !r.fresh(r.rules.storedAt) {
		return nil, false
	}
	return r.rules.value, true
}

func (r *Repository) SaveScores(scores []models.SeasonGameRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scores = &entry[[]models.SeasonGameRecord]{value: scores, storedAt: r.now()}
}

func (r *Repository) GetScores() ([]models.SeasonGameRecord, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.scores == nil || !r.fresh(r.scores.storedAt) {
		return nil, false
	}
	return r.scores.value, true
}

func (r *Repository) SaveSeasonRosters(season int, weeks []models.TeamWeek) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rosters[season] = entry[[]models.TeamWeek]{value: weeks, storedAt: r.now()}
}

func (r *Repository) GetSeasonRosters(season int) ([]models.TeamWeek, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.rosters[season]
	if !ok || !r.fresh(e.storedAt) {
		return nil, false
	}
	return e.value, true
}

// Clear drops everything so the next read goes back to the source files.
func (r *Repository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules = nil
	r.scores = nil
	r.rosters = make(map[int]entry[[]models.TeamWeek])
}
