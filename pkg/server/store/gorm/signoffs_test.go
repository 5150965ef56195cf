package gorm

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cxcds/usint-in-go/pkg/model"
	"github.com/cxcds/usint-in-go/pkg/server/store"
)

func pendingSignoffRow() *sqlmock.Rows {
	return sqlmock.NewRows(signoffColumns).
		AddRow(
			4, 7,
			model.StatusPending, nil, nil,
			model.StatusNotRequired, nil, nil,
			model.StatusNotRequired, nil, nil,
			model.StatusNotRequired, nil, nil,
			model.StatusPending, nil, nil,
		)
}

func signedSignoffRow(signer int64, epoch int64) *sqlmock.Rows {
	return sqlmock.NewRows(signoffColumns).
		AddRow(
			4, 7,
			model.StatusSigned, signer, epoch,
			model.StatusNotRequired, nil, nil,
			model.StatusNotRequired, nil, nil,
			model.StatusNotRequired, nil, nil,
			model.StatusPending, nil, nil,
		)
}

func TestPerformSignoffGeneral(t *testing.T) {
	db, mock := newMockDB(t)
	signoffs := NewSignoffsStore(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM "signoffs" WHERE "signoffs"."id" =`).
		WithArgs(int64(4), 1).
		WillReturnRows(pendingSignoffRow())
	mock.ExpectExec(`UPDATE "signoffs" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := signoffs.PerformSignoff(4, store.SignGeneral, 3)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPerformSignoffUnknownKind(t *testing.T) {
	db, _ := newMockDB(t)
	signoffs := NewSignoffsStore(db)

	err := signoffs.PerformSignoff(4, "mp", 3)
	assert.Error(t, err)
}

func TestPerformSignoffNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	signoffs := NewSignoffsStore(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM "signoffs" WHERE "signoffs"."id" =`).
		WithArgs(int64(99), 1).
		WillReturnRows(sqlmock.NewRows(signoffColumns))
	mock.ExpectRollback()

	err := signoffs.PerformSignoff(99, store.SignUsint, 3)
	assert.ErrorIs(t, err, store.ErrSignoffNotFound)
}

func TestPerformSignoffApproveCreatesAsisRevision(t *testing.T) {
	db, mock := newMockDB(t)
	signoffs := NewSignoffsStore(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM "signoffs" WHERE "signoffs"."id" =`).
		WithArgs(int64(4), 1).
		WillReturnRows(pendingSignoffRow())
	mock.ExpectExec(`UPDATE "signoffs" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT .* FROM "revisions" WHERE "revisions"."id" =`).
		WithArgs(int64(7), 1).
		WillReturnRows(sqlmock.NewRows(revisionColumns).
			AddRow(7, 23181, 1, model.KindNorm, 704009, 1756400000, 5, nil))
	mock.ExpectQuery(`SELECT max\(revision_number\) FROM "revisions" WHERE obsid =`).
		WithArgs(int64(23181)).
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(1))
	mock.ExpectQuery(`INSERT INTO "revisions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(8))
	mock.ExpectQuery(`INSERT INTO "signoffs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
	mock.ExpectCommit()

	err := signoffs.PerformSignoff(4, store.SignApprove, 3)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUndoSignoffBySigner(t *testing.T) {
	db, mock := newMockDB(t)
	signoffs := NewSignoffsStore(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM "signoffs" WHERE "signoffs"."id" =`).
		WithArgs(int64(4), 1).
		WillReturnRows(signedSignoffRow(3, 1756400000))
	mock.ExpectExec(`UPDATE "signoffs" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := signoffs.UndoSignoff(4, "general", 3, 1756300000)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUndoSignoffWrongUser(t *testing.T) {
	db, mock := newMockDB(t)
	signoffs := NewSignoffsStore(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM "signoffs" WHERE "signoffs"."id" =`).
		WithArgs(int64(4), 1).
		WillReturnRows(signedSignoffRow(3, 1756400000))
	mock.ExpectRollback()

	err := signoffs.UndoSignoff(4, "general", 9, 1756300000)
	assert.ErrorIs(t, err, store.ErrNotReversible)
}

func TestUndoSignoffWindowExpired(t *testing.T) {
	db, mock := newMockDB(t)
	signoffs := NewSignoffsStore(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM "signoffs" WHERE "signoffs"."id" =`).
		WithArgs(int64(4), 1).
		WillReturnRows(signedSignoffRow(3, 1756200000))
	mock.ExpectRollback()

	err := signoffs.UndoSignoff(4, "general", 3, 1756300000)
	assert.ErrorIs(t, err, store.ErrNotReversible)
}

func TestUndoSignoffUnknownColumn(t *testing.T) {
	db, _ := newMockDB(t)
	signoffs := NewSignoffsStore(db)

	err := signoffs.UndoSignoff(4, "mp", 3, 0)
	assert.Error(t, err)
}

func TestRemoveRevisionByOwner(t *testing.T) {
	db, mock := newMockDB(t)
	signoffs := NewSignoffsStore(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM "revisions" WHERE "revisions"."id" =`).
		WithArgs(int64(7), 1).
		WillReturnRows(sqlmock.NewRows(revisionColumns).
			AddRow(7, 23181, 2, model.KindNorm, 704009, 1756400000, 3, nil))
	mock.ExpectQuery(`SELECT .* FROM "signoffs" WHERE "signoffs"."revision_id" =`).
		WithArgs(int64(7)).
		WillReturnRows(pendingSignoffRow())
	mock.ExpectExec(`DELETE FROM "requests"`).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM "originals"`).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM "signoffs"`).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "revisions"`).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := signoffs.RemoveRevision(7, 3, 1756300000)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoveRevisionNotOwner(t *testing.T) {
	db, mock := newMockDB(t)
	signoffs := NewSignoffsStore(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM "revisions" WHERE "revisions"."id" =`).
		WithArgs(int64(7), 1).
		WillReturnRows(sqlmock.NewRows(revisionColumns).
			AddRow(7, 23181, 2, model.KindNorm, 704009, 1756400000, 3, nil))
	mock.ExpectQuery(`SELECT .* FROM "signoffs" WHERE "signoffs"."revision_id" =`).
		WithArgs(int64(7)).
		WillReturnRows(pendingSignoffRow())
	mock.ExpectRollback()

	err := signoffs.RemoveRevision(7, 9, 1756300000)
	assert.ErrorIs(t, err, store.ErrNotReversible)
}

func TestRemoveRevisionAlreadySigned(t *testing.T) {
	db, mock := newMockDB(t)
	signoffs := NewSignoffsStore(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM "revisions" WHERE "revisions"."id" =`).
		WithArgs(int64(7), 1).
		WillReturnRows(sqlmock.NewRows(revisionColumns).
			AddRow(7, 23181, 2, model.KindNorm, 704009, 1756400000, 3, nil))
	mock.ExpectQuery(`SELECT .* FROM "signoffs" WHERE "signoffs"."revision_id" =`).
		WithArgs(int64(7)).
		WillReturnRows(signedSignoffRow(5, 1756400000))
	mock.ExpectRollback()

	err := signoffs.RemoveRevision(7, 3, 1756300000)
	assert.ErrorIs(t, err, store.ErrNotReversible)
}
