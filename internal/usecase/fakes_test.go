package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"ats/internal/domain/application"
	"ats/internal/domain/jobrole"
	"ats/internal/repository"

	"github.com/google/uuid"
)

// memApps is an in-memory ApplicationRepository. Mutate holds the store lock
// for the whole read-modify-write, like the row lock in Postgres.
type memApps struct {
	mu         sync.Mutex
	rows       map[uuid.UUID]application.Application
	order      []uuid.UUID
	names      map[uuid.UUID]string
	titles     map[uuid.UUID]string
	failMutate map[uuid.UUID]error
	listErr    error
}

func newMemApps() *memApps {
	return &memApps{
		rows:       map[uuid.UUID]application.Application{},
		names:      map[uuid.UUID]string{},
		titles:     map[uuid.UUID]string{},
		failMutate: map[uuid.UUID]error{},
	}
}

func (m *memApps) put(app application.Application) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[app.ID]; !ok {
		m.order = append(m.order, app.ID)
	}
	m.rows[app.ID] = app
}

func (m *memApps) get(id uuid.UUID) application.Application {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rows[id]
}

func (m *memApps) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

func (m *memApps) detail(app application.Application) repository.ApplicationDetail {
	return repository.ApplicationDetail{
		Application:   app,
		ApplicantName: m.names[app.ApplicantID],
		JobRoleTitle:  m.titles[app.JobRoleID],
	}
}

func (m *memApps) Create(_ context.Context, app application.Application) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.ApplicantID == app.ApplicantID && r.JobRoleID == app.JobRoleID {
			return repository.ErrApplicationDuplicate
		}
	}
	m.rows[app.ID] = app
	m.order = append(m.order, app.ID)
	return nil
}

func (m *memApps) FindByID(_ context.Context, id uuid.UUID) (repository.ApplicationDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	app, ok := m.rows[id]
	if !ok {
		return repository.ApplicationDetail{}, repository.ErrApplicationNotFound
	}
	return m.detail(app), nil
}

func (m *memApps) ExistsForApplicantAndJobRole(_ context.Context, applicantID, jobRoleID uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.ApplicantID == applicantID && r.JobRoleID == jobRoleID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memApps) List(_ context.Context, f repository.ApplicationFilter) ([]repository.ApplicationDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]repository.ApplicationDetail, 0)
	for _, id := range m.order {
		r := m.rows[id]
		if f.ApplicantID != nil && r.ApplicantID != *f.ApplicantID {
			continue
		}
		if f.IsTechnical != nil && r.IsTechnical != *f.IsTechnical {
			continue
		}
		excluded := false
		for _, s := range f.ExcludeStatuses {
			if r.Status == s {
				excluded = true
			}
		}
		if excluded {
			continue
		}
		out = append(out, m.detail(r))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (m *memApps) Mutate(_ context.Context, id uuid.UUID, fn repository.MutateFunc) (application.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	current, ok := m.rows[id]
	if !ok {
		return application.Application{}, repository.ErrApplicationNotFound
	}
	next, err := fn(current)
	if err != nil {
		return application.Application{}, err
	}
	if err := m.failMutate[id]; err != nil {
		return application.Application{}, err
	}
	if !application.ExtendsHistory(current, next) {
		return application.Application{}, errors.New("history rewritten")
	}
	if err := next.CheckHistory(); err != nil {
		return application.Application{}, err
	}
	m.rows[id] = next
	return next, nil
}

func (m *memApps) CountMissingExperience(context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := 0
	for _, r := range m.rows {
		if r.Experience == nil {
			c++
		}
	}
	return c, nil
}

func (m *memApps) FillMissingExperience(_ context.Context, value int) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, r := range m.rows {
		if r.Experience == nil {
			v := value
			r.Experience = &v
			m.rows[id] = r
			n++
		}
	}
	return n, nil
}

type memJobRoles struct {
	mu    sync.Mutex
	rows  map[uuid.UUID]jobrole.JobRole
	inUse map[uuid.UUID]bool
}

func newMemJobRoles(roles ...jobrole.JobRole) *memJobRoles {
	m := &memJobRoles{rows: map[uuid.UUID]jobrole.JobRole{}, inUse: map[uuid.UUID]bool{}}
	for _, r := range roles {
		m.rows[r.ID] = r
	}
	return m
}

func (m *memJobRoles) List(context.Context) ([]jobrole.JobRole, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]jobrole.JobRole, 0, len(m.rows))
	for _, r := range m.rows {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memJobRoles) FindByID(_ context.Context, id uuid.UUID) (jobrole.JobRole, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rows[id]
	if !ok {
		return jobrole.JobRole{}, jobrole.ErrNotFound
	}
	return r, nil
}

func (m *memJobRoles) Create(_ context.Context, j jobrole.JobRole) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[j.ID] = j
	return nil
}

func (m *memJobRoles) Update(_ context.Context, j jobrole.JobRole) (jobrole.JobRole, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.rows[j.ID]
	if !ok {
		return jobrole.JobRole{}, jobrole.ErrNotFound
	}
	j.CreatedAt = cur.CreatedAt
	m.rows[j.ID] = j
	return j, nil
}

func (m *memJobRoles) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.inUse[id] {
		return repository.ErrJobRoleInUse
	}
	if _, ok := m.rows[id]; !ok {
		return jobrole.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

type memDashboard struct {
	apps  *memApps
	calls int
}

func (d *memDashboard) GetTotals(context.Context) (repository.ApplicationTotals, error) {
	d.apps.mu.Lock()
	defer d.apps.mu.Unlock()
	d.calls++
	var t repository.ApplicationTotals
	for _, r := range d.apps.rows {
		t.Total++
		if r.IsTechnical {
			t.Technical++
		} else {
			t.NonTechnical++
		}
	}
	return t, nil
}

func (d *memDashboard) CountByStatus(context.Context) ([]repository.StatusCount, error) {
	d.apps.mu.Lock()
	defer d.apps.mu.Unlock()
	counts := map[application.Status]int{}
	for _, r := range d.apps.rows {
		counts[r.Status]++
	}
	out := make([]repository.StatusCount, 0)
	for _, s := range application.AllStatuses() {
		if counts[s] > 0 {
			out = append(out, repository.StatusCount{Status: s, Count: counts[s]})
		}
	}
	return out, nil
}

type memCache struct {
	mu          sync.Mutex
	items       map[string][]byte
	invalidated int
}

func newMemCache() *memCache { return &memCache{items: map[string][]byte{}} }

func (c *memCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.items[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *memCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.items[key] = b
	return nil
}

func (c *memCache) DeleteByPattern(_ context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated++
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range c.items {
		if strings.HasPrefix(k, prefix) {
			delete(c.items, k)
		}
	}
	return nil
}

type memLocker struct {
	mu       sync.Mutex
	held     bool
	acquired int
	released int
	lockErr  error
}

func (l *memLocker) TryLock(context.Context, string, time.Duration) (string, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.lockErr != nil {
		return "", false, l.lockErr
	}
	if l.held {
		return "", false, nil
	}
	l.held = true
	l.acquired++
	return fmt.Sprintf("token-%d", l.acquired), true, nil
}

func (l *memLocker) Unlock(context.Context, string, string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.held = false
	l.released++
	return nil
}

type recordingNotifier struct {
	mu      sync.Mutex
	changes []StatusChange
}

func (n *recordingNotifier) NotifyStatusChanged(_ context.Context, c StatusChange) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.changes = append(n.changes, c)
}

func (n *recordingNotifier) len() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.changes)
}

// fixedRandom always returns the same draw.
type fixedRandom float64

func (f fixedRandom) Float64() float64 { return float64(f) }

// stepClock returns strictly increasing instants.
type stepClock struct {
	mu sync.Mutex
	t  time.Time
}

func newStepClock() *stepClock {
	return &stepClock{t: time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *stepClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

func intPtr(v int) *int { return &v }

func boolPtr(v bool) *bool { return &v }
