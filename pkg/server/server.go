package server

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/cxcds/usint-in-go/pkg/config"
	"github.com/cxcds/usint-in-go/pkg/notify"
	"github.com/cxcds/usint-in-go/pkg/server/store"
)

// Catalog reads per-obsid parameter data from the remote catalog.
type Catalog interface {
	ObsidData(ctx context.Context, obsid int64) (map[string]interface{}, error)
}

// SupportData answers lookups against the observation support files.
type SupportData interface {
	OnORList(obsid int64) bool
	PlannedRoll(obsid int64) (string, bool)
}

type Server struct {
	Router *mux.Router
	DB     *gorm.DB
	Config *config.UsintConfig

	Users      store.UsersStore
	Revisions  store.RevisionsStore
	Signoffs   store.SignoffsStore
	Schedules  store.SchedulesStore
	Parameters store.ParametersStore
	Health     store.HealthStore

	Catalog  Catalog
	ObsSS    SupportData
	Notifier *notify.Notifier

	srv *http.Server
}

func NewServer(
	cfg *config.UsintConfig,
	db *gorm.DB,
	catalog Catalog,
	obsSS SupportData,
	notifier *notify.Notifier,
	addr string,
) *Server {

	router := mux.NewRouter().UseEncodedPath()
	srv := &http.Server{
		Handler: handlers.LoggingHandler(os.Stdout, router),
		Addr:    addr,
		// Good practice: enforce timeouts for servers you create!
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	return &Server{
		Router:   router,
		DB:       db,
		Config:   cfg,
		Catalog:  catalog,
		ObsSS:    obsSS,
		Notifier: notifier,
		srv:      srv,
	}
}

func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}
