package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/emrgen/bioref/internal/model"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupMockStore opens a postgres flavoured store over sqlmock.
func setupMockStore(t *testing.T) (*GormStore, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	dialector := postgres.New(postgres.Config{
		Conn:       db,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	if err != nil {
		t.Fatalf("failed to open gorm db: %v", err)
	}

	cleanup := func() {
		db.Close()
	}

	return NewGormStore(gormDB), mock, cleanup
}

func TestGormStore_Postgres_DuplicateKey(t *testing.T) {
	s, mock, cleanup := setupMockStore(t)
	defer cleanup()

	mock.ExpectExec(`INSERT INTO "organism"`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "idx_organism_binary_name"})

	err := s.CreateOrganism(context.TODO(), &model.Organism{ID: "o1", BinaryName: "Homo sapiens", ShortName: "human"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateKey)
	assert.False(t, IsRetryable(err))

	var se *Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "binary_name", se.Field)
	assert.Equal(t, "Homo sapiens", se.Value)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_Postgres_DeleteRestricted(t *testing.T) {
	s, mock, cleanup := setupMockStore(t)
	defer cleanup()

	mock.ExpectExec(`DELETE FROM "organism"`).
		WillReturnError(&pgconn.PgError{Code: "23503"})

	err := s.DeleteOrganism(context.TODO(), "o1")
	assert.ErrorIs(t, err, ErrConflict)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_Postgres_Unavailable(t *testing.T) {
	s, mock, cleanup := setupMockStore(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT \* FROM "ontology_term"`).
		WillReturnError(&pgconn.PgError{Code: "08006", Message: "connection failure"})

	_, err := s.GetOntologyTerm(context.TODO(), "t1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.True(t, IsRetryable(err))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_Postgres_ForUpdate(t *testing.T) {
	s, mock, cleanup := setupMockStore(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery(`SELECT \* FROM "structure" WHERE id = \$1 .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "structure_id", "created_at", "updated_at"}).
			AddRow("s1", "1ABC", now, now))
	mock.ExpectQuery(`SELECT \* FROM "structure" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "structure_id", "created_at", "updated_at"}))

	got, err := s.ForUpdate().GetStructure(context.TODO(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "1ABC", got.StructureID)

	_, err = s.GetStructure(context.TODO(), "s2")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_Postgres_AddEdgeCanonical(t *testing.T) {
	s, mock, cleanup := setupMockStore(t)
	defer cleanup()

	mock.ExpectExec(`INSERT INTO "protein_interaction" .* ON CONFLICT DO NOTHING`).
		WithArgs("a", "b", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.AddEdge(context.TODO(), model.VariantProtein, model.RelationInteraction, "b", "a"))

	assert.NoError(t, mock.ExpectationsWereMet())
}
