package endpoints

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/cxcds/usint-in-go/pkg/model"
	"github.com/cxcds/usint-in-go/pkg/server/store"
)

// MockUsersStore implements store.UsersStore for testing using testify/mock
type MockUsersStore struct {
	mock.Mock
}

func (m *MockUsersStore) ByUsername(username string) (*model.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUsersStore) ByID(id int64) (*model.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUsersStore) Create(user *model.User) error {
	return m.Called(user).Error(0)
}

func (m *MockUsersStore) List() ([]model.User, error) {
	args := m.Called()
	return args.Get(0).([]model.User), args.Error(1)
}

// MockRevisionsStore implements store.RevisionsStore for testing
type MockRevisionsStore struct {
	mock.Mock
}

func (m *MockRevisionsStore) CreateSubmission(sub store.Submission) (*model.Revision, error) {
	args := m.Called(sub)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Revision), args.Error(1)
}

func (m *MockRevisionsStore) NextRevisionNumber(obsid int64) (int64, error) {
	args := m.Called(obsid)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRevisionsStore) Pull(filter store.PullFilter) ([]model.Revision, error) {
	args := m.Called(filter)
	return args.Get(0).([]model.Revision), args.Error(1)
}

func (m *MockRevisionsStore) ByObsidRev(obsid, revisionNumber int64) (*model.Revision, error) {
	args := m.Called(obsid, revisionNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Revision), args.Error(1)
}

func (m *MockRevisionsStore) IsApproved(obsid int64) (bool, error) {
	args := m.Called(obsid)
	return args.Bool(0), args.Error(1)
}

func (m *MockRevisionsStore) HasOpenRevision(obsid int64) (bool, error) {
	args := m.Called(obsid)
	return args.Bool(0), args.Error(1)
}

// MockSignoffsStore implements store.SignoffsStore for testing
type MockSignoffsStore struct {
	mock.Mock
}

func (m *MockSignoffsStore) ByID(signoffID int64) (*store.RevisionSignoff, error) {
	args := m.Called(signoffID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.RevisionSignoff), args.Error(1)
}

func (m *MockSignoffsStore) PerformSignoff(signoffID int64, kind string, userID int64) error {
	return m.Called(signoffID, kind, userID).Error(0)
}

func (m *MockSignoffsStore) PullStatus(order store.StatusOrder) ([]store.RevisionSignoff, error) {
	args := m.Called(order)
	return args.Get(0).([]store.RevisionSignoff), args.Error(1)
}

func (m *MockSignoffsStore) UndoSignoff(signoffID int64, column string, userID int64, notBefore int64) error {
	return m.Called(signoffID, column, userID, notBefore).Error(0)
}

func (m *MockSignoffsStore) RemoveRevision(revisionID int64, userID int64, notBefore int64) error {
	return m.Called(revisionID, userID, notBefore).Error(0)
}

// MockSchedulesStore implements store.SchedulesStore for testing
type MockSchedulesStore struct {
	mock.Mock
}

func (m *MockSchedulesStore) List() ([]model.Schedule, error) {
	args := m.Called()
	return args.Get(0).([]model.Schedule), args.Error(1)
}

func (m *MockSchedulesStore) Assign(entryID int64, userID *int64, assignerID int64) error {
	return m.Called(entryID, userID, assignerID).Error(0)
}

func (m *MockSchedulesStore) Split(entryID int64, at time.Time) error {
	return m.Called(entryID, at).Error(0)
}

func (m *MockSchedulesStore) Extend(through time.Time) error {
	return m.Called(through).Error(0)
}

// MockParametersStore implements store.ParametersStore for testing
type MockParametersStore struct {
	mock.Mock
}

func (m *MockParametersStore) ByName(name string) (*model.Parameter, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Parameter), args.Error(1)
}

func (m *MockParametersStore) Seed(parameters []model.Parameter) error {
	return m.Called(parameters).Error(0)
}

// MockHealthStore implements store.HealthStore for testing
type MockHealthStore struct {
	mock.Mock
}

func (m *MockHealthStore) CheckConnectivity() error {
	return m.Called().Error(0)
}

// MockCatalog implements server.Catalog for testing
type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) ObsidData(ctx context.Context, obsid int64) (map[string]interface{}, error) {
	args := m.Called(obsid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]interface{}), args.Error(1)
}

// fakeSupport is a canned stand-in for the observation support files
type fakeSupport struct {
	orList map[int64]bool
	rolls  map[int64]string
}

func (f *fakeSupport) OnORList(obsid int64) bool {
	return f.orList[obsid]
}

func (f *fakeSupport) PlannedRoll(obsid int64) (string, bool) {
	roll, ok := f.rolls[obsid]
	return roll, ok
}
