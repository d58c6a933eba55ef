package glossary

import (
	"context"
	"errors"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresStore_Entries(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	rows := pgxmock.NewRows([]string{"project", "source", "target"}).
		AddRow("demo", "good morning", "bonjour").
		AddRow("", "morning", "matin").
		AddRow("", "good morning", "salut")
	mock.ExpectQuery(`SELECT project, source, target FROM glossary_entries`).
		WithArgs("demo").
		WillReturnRows(rows)

	got, err := NewPostgresStore(mock).Entries(context.Background(), "demo")
	require.NoError(t, err)
	assert.Equal(t, []Entry{
		{Source: "good morning", Target: "bonjour"},
		{Source: "morning", Target: "matin"},
	}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_EntriesUnavailable(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT`).WithArgs("demo").WillReturnError(errors.New("connection refused"))

	_, err = NewPostgresStore(mock).Entries(context.Background(), "demo")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Upsert(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`INSERT INTO glossary_entries`).
		WithArgs("demo", "Eileen", "Ilina").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`INSERT INTO glossary_entries`).
		WithArgs("demo", "Lucy", "Lucie").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	n, err := NewPostgresStore(mock).Upsert(context.Background(), "demo", []Entry{
		{Source: "Eileen", Target: "Ilina"},
		{Source: "", Target: "skipped"},
		{Source: "Lucy", Target: "Lucie"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_EnsureSchema(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS glossary_entries`).
		WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))

	require.NoError(t, NewPostgresStore(mock).EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
