package endpoints

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cxcds/usint-in-go/pkg/model"
	"github.com/cxcds/usint-in-go/pkg/ocat"
	"github.com/cxcds/usint-in-go/pkg/server/store"
)

func TestExpressApproval(t *testing.T) {
	s, mocks := newTestServer()
	mocks.expectUser(testUser())

	// 23181 gets approved
	mocks.Revisions.On("IsApproved", int64(23181)).Return(false, nil)
	mocks.Revisions.On("HasOpenRevision", int64(23181)).Return(false, nil)
	mocks.Catalog.On("ObsidData", int64(23181)).Return(catalogRecord(), nil)
	mocks.Revisions.On("CreateSubmission", mock.MatchedBy(func(sub store.Submission) bool {
		return sub.Obsid == 23181 && sub.Kind == model.KindAsis && sub.AutoSign
	})).Return(&model.Revision{ID: 7, Obsid: 23181, RevisionNumber: 1, Kind: model.KindAsis}, nil)

	// 27004 is already approved
	mocks.Revisions.On("IsApproved", int64(27004)).Return(true, nil)

	// 28001 is still under review
	mocks.Revisions.On("IsApproved", int64(28001)).Return(false, nil)
	mocks.Revisions.On("HasOpenRevision", int64(28001)).Return(true, nil)

	// 99999 has no catalog record
	mocks.Revisions.On("IsApproved", int64(99999)).Return(false, nil)
	mocks.Revisions.On("HasOpenRevision", int64(99999)).Return(false, nil)
	mocks.Catalog.On("ObsidData", int64(99999)).Return(nil, ocat.ErrNoResult{Obsid: 99999})

	body := `{"obsids":"23181, 27004; 28001 99999"}`
	req := httptest.NewRequest("POST", "/express", strings.NewReader(body))
	req.Header.Set("X-Remote-User", "jdoe")
	rec := httptest.NewRecorder()
	s.Router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var outcomes []ExpressOutcome
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &outcomes))
	require.Len(t, outcomes, 4)

	byObsid := map[int64]ExpressOutcome{}
	for _, o := range outcomes {
		byObsid[o.Obsid] = o
	}
	assert.Equal(t, "approved", byObsid[23181].Status)
	assert.Equal(t, "23181.1", byObsid[23181].ObsidRev)
	assert.Equal(t, "already approved", byObsid[27004].Status)
	assert.Equal(t, "open revision", byObsid[28001].Status)
	assert.Equal(t, "unknown obsid", byObsid[99999].Status)

	assert.Contains(t, mocks.Mail.String(), "Parameter Change Log: 23181.1 (Approved)")
}

func TestExpressMalformedList(t *testing.T) {
	s, mocks := newTestServer()
	mocks.expectUser(testUser())

	body := `{"obsids":"23181:banana"}`
	req := httptest.NewRequest("POST", "/express", strings.NewReader(body))
	req.Header.Set("X-Remote-User", "jdoe")
	rec := httptest.NewRecorder()
	s.Router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExpressEmptyList(t *testing.T) {
	s, mocks := newTestServer()
	mocks.expectUser(testUser())

	body := `{"obsids":"   "}`
	req := httptest.NewRequest("POST", "/express", strings.NewReader(body))
	req.Header.Set("X-Remote-User", "jdoe")
	rec := httptest.NewRecorder()
	s.Router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
