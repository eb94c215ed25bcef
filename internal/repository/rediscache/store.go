package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cmlabs-hris/workspace-backend-go/internal/domain/directory"
	"github.com/cmlabs-hris/workspace-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/workspace-backend-go/internal/domain/invoice"
	"github.com/cmlabs-hris/workspace-backend-go/internal/domain/project"
	"github.com/cmlabs-hris/workspace-backend-go/internal/pkg/apperror"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

const (
	EmployeesKey = "directory:employees"
	ProjectsKey  = "directory:projects"
	InvoicesKey  = "directory:invoices"
)

// loadTimeout bounds a shared load, which outlives the caller that started it.
const loadTimeout = 15 * time.Second

// Store is a read-through cache in front of another directory.Store.
// Only the list calls are cached; every mutation drops the affected keys.
type Store struct {
	next directory.Store
	rdb  *redis.Client
	ttl  time.Duration
	sf   *singleflight.Group

	// generations counts invalidations per key. A load only fills the cache
	// if no invalidation happened since it started.
	mu          sync.Mutex
	generations map[string]uint64
}

func NewStore(next directory.Store, rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{
		next:        next,
		rdb:         rdb,
		ttl:         ttl,
		sf:          &singleflight.Group{},
		generations: make(map[string]uint64),
	}
}

// readThrough serves key from redis, or loads it once across concurrent callers and stores the JSON.
// The shared load runs detached from any single caller; each caller stops waiting when its own ctx ends.
func readThrough[T any](ctx context.Context, s *Store, key string, load func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	if cached, err := s.rdb.Get(ctx, key).Result(); err == nil {
		var v T
		if json.Unmarshal([]byte(cached), &v) == nil {
			return v, nil
		}
		slog.Warn("discarding undecodable cache entry", "key", key)
	} else if err != redis.Nil {
		slog.Warn("redis get failed, reading through", "key", key, "error", err)
	}

	gen := s.generation(key)
	ch := s.sf.DoChan(fmt.Sprintf("%s#%d", key, gen), func() (interface{}, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), loadTimeout)
		defer cancel()

		fresh, err := load(loadCtx)
		if err != nil {
			return nil, err
		}
		s.fill(loadCtx, key, gen, fresh)
		return fresh, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return zero, apperror.Wrap(apperror.ErrTimeout, "list "+key, ctx.Err())
		}
		return zero, apperror.Wrap(apperror.ErrCanceled, "list "+key, ctx.Err())
	}
}

func (s *Store) generation(key string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generations[key]
}

// fill stores v under key unless key was invalidated after gen was read.
func (s *Store) fill(ctx context.Context, key string, gen uint64, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Warn("cannot encode cache entry", "key", key, "error", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generations[key] != gen {
		slog.Debug("skipping cache fill after invalidation", "key", key)
		return
	}
	if err := s.rdb.Set(ctx, key, string(data), s.ttl).Err(); err != nil {
		slog.Warn("redis set failed", "key", key, "error", err)
	}
}

func (s *Store) invalidate(ctx context.Context, keys ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		s.generations[key]++
	}
	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		slog.Error("failed to invalidate directory cache", "keys", keys, "error", err)
	}
}

func (s *Store) ListEmployees(ctx context.Context) ([]employee.Employee, error) {
	return readThrough(ctx, s, EmployeesKey, s.next.ListEmployees)
}

func (s *Store) GetEmployee(ctx context.Context, id string) (employee.Employee, error) {
	return s.next.GetEmployee(ctx, id)
}

func (s *Store) CreateEmployee(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	created, err := s.next.CreateEmployee(ctx, newEmployee)
	if err != nil {
		return employee.Employee{}, err
	}
	s.invalidate(ctx, EmployeesKey)
	return created, nil
}

func (s *Store) UpdateEmployee(ctx context.Context, emp employee.Employee) error {
	if err := s.next.UpdateEmployee(ctx, emp); err != nil {
		return err
	}
	s.invalidate(ctx, EmployeesKey)
	return nil
}

// DeleteEmployee also drops the project list, since team memberships change with it.
func (s *Store) DeleteEmployee(ctx context.Context, id string) error {
	if err := s.next.DeleteEmployee(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, EmployeesKey, ProjectsKey)
	return nil
}

func (s *Store) ListProjects(ctx context.Context) ([]project.Project, error) {
	records, err := readThrough(ctx, s, ProjectsKey, func(ctx context.Context) ([]projectRecord, error) {
		projects, err := s.next.ListProjects(ctx)
		if err != nil {
			return nil, err
		}
		return toProjectRecords(projects), nil
	})
	if err != nil {
		return nil, err
	}
	return fromProjectRecords(records), nil
}

func (s *Store) GetProject(ctx context.Context, id string) (project.Project, error) {
	return s.next.GetProject(ctx, id)
}

func (s *Store) CreateProject(ctx context.Context, newProject project.Project) (project.Project, error) {
	created, err := s.next.CreateProject(ctx, newProject)
	if err != nil {
		return project.Project{}, err
	}
	s.invalidate(ctx, ProjectsKey)
	return created, nil
}

func (s *Store) UpdateProject(ctx context.Context, p project.Project) error {
	if err := s.next.UpdateProject(ctx, p); err != nil {
		return err
	}
	s.invalidate(ctx, ProjectsKey)
	return nil
}

// DeleteProject also drops the invoice list, since linked invoices are unlinked.
func (s *Store) DeleteProject(ctx context.Context, id string) error {
	if err := s.next.DeleteProject(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, ProjectsKey, InvoicesKey)
	return nil
}

func (s *Store) ListInvoices(ctx context.Context) ([]invoice.Invoice, error) {
	return readThrough(ctx, s, InvoicesKey, s.next.ListInvoices)
}

func (s *Store) GetInvoice(ctx context.Context, id string) (invoice.Invoice, error) {
	return s.next.GetInvoice(ctx, id)
}

func (s *Store) CreateInvoice(ctx context.Context, newInvoice invoice.Invoice) (invoice.Invoice, error) {
	created, err := s.next.CreateInvoice(ctx, newInvoice)
	if err != nil {
		return invoice.Invoice{}, err
	}
	s.invalidate(ctx, InvoicesKey)
	return created, nil
}

func (s *Store) UpdateInvoice(ctx context.Context, inv invoice.Invoice) error {
	if err := s.next.UpdateInvoice(ctx, inv); err != nil {
		return err
	}
	s.invalidate(ctx, InvoicesKey)
	return nil
}

func (s *Store) DeleteInvoice(ctx context.Context, id string) error {
	if err := s.next.DeleteInvoice(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, InvoicesKey)
	return nil
}
