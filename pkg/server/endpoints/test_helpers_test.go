package endpoints

import (
	"bytes"

	"github.com/cxcds/usint-in-go/pkg/config"
	"github.com/cxcds/usint-in-go/pkg/model"
	"github.com/cxcds/usint-in-go/pkg/notify"
	"github.com/cxcds/usint-in-go/pkg/server"
)

// testMocks bundles the mocked backends behind a test server.
type testMocks struct {
	Users     *MockUsersStore
	Revisions *MockRevisionsStore
	Signoffs  *MockSignoffsStore
	Schedules *MockSchedulesStore
	Health    *MockHealthStore
	Catalog   *MockCatalog
	Support   *fakeSupport

	// Mail collects notification output (the notifier runs in test mode)
	Mail *bytes.Buffer
}

// newTestServer builds a server over mocked stores with all endpoints
// registered.
func newTestServer() (*server.Server, *testMocks) {
	mocks := &testMocks{
		Users:     &MockUsersStore{},
		Revisions: &MockRevisionsStore{},
		Signoffs:  &MockSignoffsStore{},
		Schedules: &MockSchedulesStore{},
		Health:    &MockHealthStore{},
		Catalog:   &MockCatalog{},
		Support:   &fakeSupport{orList: map[int64]bool{}, rolls: map[int64]string{}},
		Mail:      &bytes.Buffer{},
	}

	notifier := notify.NewNotifier("/sbin/sendmail", true, nil)
	notifier.Out = mocks.Mail

	cfg := &config.UsintConfig{
		BindAddress:  "127.0.0.1:0",
		HTTPAddress:  "https://usint.example.edu",
		SendmailPath: "/sbin/sendmail",
	}

	s := server.NewServer(cfg, nil, mocks.Catalog, mocks.Support, notifier, cfg.BindAddress)
	s.Users = mocks.Users
	s.Revisions = mocks.Revisions
	s.Signoffs = mocks.Signoffs
	s.Schedules = mocks.Schedules
	s.Health = mocks.Health

	RegisterAll(s)

	return s, mocks
}

// expectUser arranges the remote user lookup the auth middleware performs.
func (m *testMocks) expectUser(user *model.User) {
	m.Users.On("ByUsername", user.Username).Return(user, nil)
}

func testUser() *model.User {
	return &model.User{
		ID:       3,
		Username: "jdoe",
		IsActive: true,
		Email:    "jdoe@example.edu",
		FullName: "Jan Doe",
	}
}
