package endpoints

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cxcds/usint-in-go/pkg/model"
	"github.com/cxcds/usint-in-go/pkg/server/store"
)

func TestParseObsidRev(t *testing.T) {
	obsid, revNo, ok := parseObsidRev("23181.2")
	require.True(t, ok)
	assert.Equal(t, int64(23181), obsid)
	assert.Equal(t, int64(2), revNo)

	for _, malformed := range []string{"23181", "23181.", ".2", "a.b", "23181.0", "-1.2", ""} {
		_, _, ok := parseObsidRev(malformed)
		assert.False(t, ok, malformed)
	}
}

func strPtr(s string) *string { return &s }

func TestRevisionDetail(t *testing.T) {
	s, mocks := newTestServer()
	mocks.expectUser(testUser())

	targname := &model.Parameter{ID: 1, Name: "targname"}
	instrument := &model.Parameter{ID: 2, Name: "instrument"}

	rev := &model.Revision{
		ID:             7,
		Obsid:          23181,
		RevisionNumber: 2,
		Kind:           model.KindNorm,
		SequenceNumber: 704009,
		Time:           1756400000,
		User:           &model.User{Username: "jdoe"},
		Signoff: &model.Signoff{
			GeneralStatus: model.StatusPending,
			AcisStatus:    model.StatusNotRequired,
			AcisSiStatus:  model.StatusNotRequired,
			HrcSiStatus:   model.StatusNotRequired,
			UsintStatus:   model.StatusPending,
		},
		Requests: []model.Request{
			{ParameterID: 1, Value: strPtr(`"NGC 1313 X-1"`), Parameter: targname},
			{ParameterID: 2, Value: strPtr(`"HRC-I"`), Parameter: instrument},
		},
		Originals: []model.Original{
			// No stored original for instrument: it was null in the catalog
			{ParameterID: 1, Value: strPtr(`"NGC 1313"`), Parameter: targname},
		},
	}
	mocks.Revisions.On("ByObsidRev", int64(23181), int64(2)).Return(rev, nil)

	req := httptest.NewRequest("GET", "/chkupdata/23181.2", nil)
	req.Header.Set("X-Remote-User", "jdoe")
	rec := httptest.NewRecorder()
	s.Router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var detail RevisionDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	assert.Equal(t, "23181.2", detail.ObsidRev)
	assert.Equal(t, "jdoe", detail.Username)
	assert.Equal(t, model.StatusPending, detail.Signoff.General)

	require.Len(t, detail.Parameters, 2)
	assert.Equal(t, "instrument", detail.Parameters[0].Name)
	assert.Nil(t, detail.Parameters[0].Original)
	assert.Equal(t, "HRC-I", detail.Parameters[0].Requested)
	assert.Equal(t, "targname", detail.Parameters[1].Name)
	assert.Equal(t, "NGC 1313", detail.Parameters[1].Original)
	assert.Equal(t, "NGC 1313 X-1", detail.Parameters[1].Requested)
}

func TestRevisionDetailMalformed(t *testing.T) {
	s, mocks := newTestServer()
	mocks.expectUser(testUser())

	req := httptest.NewRequest("GET", "/chkupdata/banana", nil)
	req.Header.Set("X-Remote-User", "jdoe")
	rec := httptest.NewRecorder()
	s.Router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRevisionDetailNotFound(t *testing.T) {
	s, mocks := newTestServer()
	mocks.expectUser(testUser())
	mocks.Revisions.On("ByObsidRev", int64(23181), int64(9)).
		Return(nil, store.ErrRevisionNotFound)

	req := httptest.NewRequest("GET", "/chkupdata/23181.9", nil)
	req.Header.Set("X-Remote-User", "jdoe")
	rec := httptest.NewRecorder()
	s.Router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
