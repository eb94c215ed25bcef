package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cmlabs-hris/workspace-backend-go/internal/domain/directory/mocks"
	"github.com/cmlabs-hris/workspace-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/workspace-backend-go/internal/domain/project"
	"github.com/cmlabs-hris/workspace-backend-go/internal/pkg/apperror"
	"github.com/go-redis/redismock/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testTTL = time.Minute

func setup(t *testing.T) (*Store, *mocks.Store, redismock.ClientMock) {
	t.Helper()
	rdb, redisMock := redismock.NewClientMock()
	next := &mocks.Store{}
	t.Cleanup(func() { next.AssertExpectations(t) })
	return NewStore(next, rdb, testTTL), next, redisMock
}

func TestListEmployees_CacheHit(t *testing.T) {
	store, next, redisMock := setup(t)

	cached := []employee.Employee{{ID: "e1", FirstName: "Jane", LastName: "Doe", Status: employee.StatusActive, Salary: decimal.NewFromInt(10)}}
	data, err := json.Marshal(cached)
	require.NoError(t, err)
	redisMock.ExpectGet(EmployeesKey).SetVal(string(data))

	got, err := store.ListEmployees(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Jane Doe", got[0].FullName())
	next.AssertNotCalled(t, "ListEmployees", mock.Anything)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestListEmployees_CacheMissLoadsAndStores(t *testing.T) {
	store, next, redisMock := setup(t)

	employees := []employee.Employee{{ID: "e1", FirstName: "Jane", LastName: "Doe", Status: employee.StatusActive}}
	redisMock.ExpectGet(EmployeesKey).RedisNil()
	next.On("ListEmployees", mock.Anything).Return(employees, nil).Once()
	redisMock.Regexp().ExpectSet(EmployeesKey, `"ID":"e1"`, testTTL).SetVal("OK")

	got, err := store.ListEmployees(context.Background())
	require.NoError(t, err)
	assert.Equal(t, employees, got)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestListEmployees_StoreErrorIsNotCached(t *testing.T) {
	store, next, redisMock := setup(t)

	redisMock.ExpectGet(EmployeesKey).RedisNil()
	next.On("ListEmployees", mock.Anything).Return(nil, apperror.ErrStoreUnavailable).Once()

	_, err := store.ListEmployees(context.Background())
	assert.ErrorIs(t, err, apperror.ErrStoreUnavailable)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestListEmployees_RedisDownFallsThrough(t *testing.T) {
	store, next, redisMock := setup(t)

	employees := []employee.Employee{{ID: "e1"}}
	redisMock.ExpectGet(EmployeesKey).SetErr(errors.New("redis down"))
	next.On("ListEmployees", mock.Anything).Return(employees, nil).Once()
	redisMock.Regexp().ExpectSet(EmployeesKey, `e1`, testTTL).SetErr(errors.New("redis down"))

	got, err := store.ListEmployees(context.Background())
	require.NoError(t, err)
	assert.Equal(t, employees, got)
}

func TestListProjects_KeepsCompletionThroughCache(t *testing.T) {
	store, _, redisMock := setup(t)

	p := project.Project{ID: "p1", Name: "Apollo", Status: project.StatusInProgress, Priority: project.PriorityHigh}
	p.SetCompletionPercentage(55)
	data, err := json.Marshal(toProjectRecords([]project.Project{p}))
	require.NoError(t, err)
	redisMock.ExpectGet(ProjectsKey).SetVal(string(data))

	got, err := store.ListProjects(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 55, got[0].CompletionPercentage())
	assert.Equal(t, project.StatusInProgress, got[0].Status)
}

func TestDeleteEmployee_InvalidatesEmployeesAndProjects(t *testing.T) {
	store, next, redisMock := setup(t)

	next.On("DeleteEmployee", mock.Anything, "e1").Return(nil).Once()
	redisMock.ExpectDel(EmployeesKey, ProjectsKey).SetVal(2)

	require.NoError(t, store.DeleteEmployee(context.Background(), "e1"))
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestUpdateProject_FailureKeepsCache(t *testing.T) {
	store, next, redisMock := setup(t)

	p := project.Project{ID: "p1"}
	next.On("UpdateProject", mock.Anything, p).Return(project.ErrProjectNotFound).Once()

	err := store.UpdateProject(context.Background(), p)
	assert.ErrorIs(t, err, project.ErrProjectNotFound)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestGetEmployee_BypassesCache(t *testing.T) {
	store, next, redisMock := setup(t)

	next.On("GetEmployee", mock.Anything, "e1").Return(employee.Employee{ID: "e1"}, nil).Once()

	got, err := store.GetEmployee(context.Background(), "e1")
	require.NoError(t, err)
	assert.Equal(t, "e1", got.ID)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

// slowEmployees blocks ListEmployees until released or its ctx ends.
type slowEmployees struct {
	*mocks.Store
	started chan struct{}
	release chan struct{}
	calls   atomic.Int32
	result  []employee.Employee
}

func newSlowEmployees(result []employee.Employee) *slowEmployees {
	return &slowEmployees{
		Store:   &mocks.Store{},
		started: make(chan struct{}),
		release: make(chan struct{}),
		result:  result,
	}
}

func (s *slowEmployees) ListEmployees(ctx context.Context) ([]employee.Employee, error) {
	if s.calls.Add(1) == 1 {
		close(s.started)
	}
	select {
	case <-s.release:
		return s.result, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

type listResult struct {
	employees []employee.Employee
	err       error
}

func TestListEmployees_JoinedCallerSurvivesFirstCallerCancel(t *testing.T) {
	rdb, redisMock := redismock.NewClientMock()
	redisMock.MatchExpectationsInOrder(false)
	employees := []employee.Employee{{ID: "e1", FirstName: "Jane", LastName: "Doe"}}
	next := newSlowEmployees(employees)
	store := NewStore(next, rdb, testTTL)

	redisMock.ExpectGet(EmployeesKey).RedisNil()
	redisMock.ExpectGet(EmployeesKey).RedisNil()
	redisMock.Regexp().ExpectSet(EmployeesKey, `"ID":"e1"`, testTTL).SetVal("OK")

	ctxA, cancelA := context.WithCancel(context.Background())
	first := make(chan listResult, 1)
	go func() {
		got, err := store.ListEmployees(ctxA)
		first <- listResult{got, err}
	}()
	<-next.started

	second := make(chan listResult, 1)
	go func() {
		got, err := store.ListEmployees(context.Background())
		second <- listResult{got, err}
	}()
	// let the second caller join the running load
	time.Sleep(50 * time.Millisecond)

	cancelA()
	a := <-first
	assert.ErrorIs(t, a.err, apperror.ErrCanceled)
	assert.ErrorIs(t, a.err, context.Canceled)

	close(next.release)
	select {
	case b := <-second:
		require.NoError(t, b.err)
		assert.Equal(t, employees, b.employees)
	case <-time.After(2 * time.Second):
		t.Fatal("joined caller never returned")
	}
	assert.Equal(t, int32(1), next.calls.Load())
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestListEmployees_LoadOverlappingMutationDoesNotFillCache(t *testing.T) {
	rdb, redisMock := redismock.NewClientMock()
	redisMock.MatchExpectationsInOrder(false)
	next := newSlowEmployees([]employee.Employee{{ID: "e1", FirstName: "Before"}})
	store := NewStore(next, rdb, testTTL)

	updated := employee.Employee{ID: "e1", FirstName: "After"}
	next.On("UpdateEmployee", mock.Anything, updated).Return(nil).Once()

	redisMock.ExpectGet(EmployeesKey).RedisNil()
	redisMock.ExpectDel(EmployeesKey).SetVal(1)
	// registered so that a stale fill would be observable as a met expectation
	redisMock.Regexp().ExpectSet(EmployeesKey, `Before`, testTTL).SetVal("OK")

	result := make(chan listResult, 1)
	go func() {
		got, err := store.ListEmployees(context.Background())
		result <- listResult{got, err}
	}()
	<-next.started

	require.NoError(t, store.UpdateEmployee(context.Background(), updated))
	close(next.release)

	r := <-result
	require.NoError(t, r.err)
	assert.Equal(t, "Before", r.employees[0].FirstName)

	assert.Error(t, redisMock.ExpectationsWereMet(), "the pre-mutation list must not be written back")
	next.AssertExpectations(t)
}
