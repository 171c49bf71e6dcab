package signals

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"creator-pricing-workers/internal/scoring/brandvet"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryRepository_CollaborationHistory(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(collaborationHistoryQuery)).
		WithArgs("Glow Labs").
		WillReturnRows(sqlmock.NewRows([]string{"count", "positive", "negative"}).AddRow(12, 8, 1))

	repo := NewHistoryRepository(db)
	got, err := repo.CollaborationHistory(context.Background(), brandvet.Input{BrandName: "  Glow Labs "})
	require.NoError(t, err)
	assert.Equal(t, &brandvet.HistorySignals{Collaborations: 12, PositiveReviews: 8, NegativeReviews: 1}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHistoryRepository_UnknownBrand(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(collaborationHistoryQuery)).
		WithArgs("Nobody Co").
		WillReturnRows(sqlmock.NewRows([]string{"count", "positive", "negative"}).AddRow(0, 0, 0))

	got, err := NewHistoryRepository(db).CollaborationHistory(context.Background(), brandvet.Input{BrandName: "Nobody Co"})
	require.NoError(t, err)
	assert.Equal(t, &brandvet.HistorySignals{}, got)
}

func TestHistoryRepository_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(collaborationHistoryQuery)).
		WithArgs("Glow Labs").
		WillReturnError(sql.ErrConnDone)

	got, err := NewHistoryRepository(db).CollaborationHistory(context.Background(), brandvet.Input{BrandName: "Glow Labs"})
	assert.Nil(t, got)
	assert.ErrorIs(t, err, sql.ErrConnDone)
	assert.NoError(t, mock.ExpectationsWereMet())
}
