package infrastructure

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	database "github.com/IT-BAER/finx-sub002/internal/db"
	"github.com/IT-BAER/finx-sub002/internal/finance/domain"
)

func startPostgres(t *testing.T) *sql.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}

	ctx := context.Background()
	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("finx_test"),
		postgres.WithUsername("finx"),
		postgres.WithPassword("finx"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	connString, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sql.Open("pgx", connString)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(database.Schema)
	require.NoError(t, err)
	return db
}

func insertUser(t *testing.T, db *sql.DB, id, email string) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO users (id, email, password_hash) VALUES ($1, $2, 'x')`, id, email)
	require.NoError(t, err)
}

func TestPostgresSharingGrantRoundTrip(t *testing.T) {
	db := startPostgres(t)
	repo := NewSharingRepository(db)

	owner := "2f0c8f6e-0000-4000-8000-000000000001"
	friend := "2f0c8f6e-0000-4000-8000-000000000002"
	insertUser(t, db, owner, "owner@example.com")
	insertUser(t, db, friend, "friend@example.com")

	scope := `[1, "cash", "2"]`
	now := time.Now().UTC().Truncate(time.Second)
	grant := domain.SharingGrant{
		ID:              "3f0c8f6e-0000-4000-8000-000000000001",
		OwnerID:         owner,
		RecipientID:     friend,
		PermissionLevel: "read",
		Scope:           &scope,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	require.NoError(t, repo.Save(grant))

	found, err := repo.FindGrant(owner, friend)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "read", found.PermissionLevel)
	require.NotNil(t, found.Scope)
	assert.Equal(t, scope, *found.Scope, "the raw token sequence survives storage untouched")

	// Saving the pair again replaces the grant instead of adding a second row.
	grant.PermissionLevel = "write"
	grant.Scope = nil
	require.NoError(t, repo.Save(grant))

	outgoing, err := repo.FindGrantsByOwner(owner)
	require.NoError(t, err)
	require.Len(t, outgoing, 1)
	assert.Equal(t, "write", outgoing[0].PermissionLevel)
	assert.Nil(t, outgoing[0].Scope)

	incoming, err := repo.FindGrantsByRecipient(friend)
	require.NoError(t, err)
	assert.Len(t, incoming, 1)

	require.NoError(t, repo.Delete(owner, friend))
	found, err = repo.FindGrant(owner, friend)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestPostgresRecordOrderingAndFilters(t *testing.T) {
	db := startPostgres(t)
	records := NewRecordRepository(db)
	sources := NewSourceRepository(db)

	owner := "2f0c8f6e-0000-4000-8000-000000000011"
	insertUser(t, db, owner, "records@example.com")

	source := domain.Source{OwnerID: owner, Name: "Checking"}
	require.NoError(t, sources.Save(&source))
	require.NotZero(t, source.ID)

	day := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		record := domain.FinancialRecord{
			OwnerID:  owner,
			Kind:     "expense",
			Amount:   float64(10 * (i + 1)),
			Date:     day.AddDate(0, 0, i),
			SourceID: &source.ID,
		}
		require.NoError(t, records.Save(&record))
		require.NotZero(t, record.ID)
	}
	income := domain.FinancialRecord{
		OwnerID:    owner,
		Kind:       "income",
		Amount:     500,
		Date:       day,
		TargetName: "Salary",
	}
	require.NoError(t, records.Save(&income))

	all, err := records.FindByOwners([]string{owner}, domain.RecordFilter{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	for i := 1; i < len(all); i++ {
		assert.False(t, all[i].Date.After(all[i-1].Date), "newest first")
	}

	onlyIncome, err := records.FindByOwners([]string{owner}, domain.RecordFilter{Kind: "income"})
	require.NoError(t, err)
	require.Len(t, onlyIncome, 1)
	assert.Equal(t, "Salary", onlyIncome[0].TargetName)

	limited, err := records.FindByOwners([]string{owner}, domain.RecordFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	ranged, err := records.FindByOwners([]string{owner}, domain.RecordFilter{
		StartDate: day.AddDate(0, 0, 1),
		EndDate:   day.AddDate(0, 0, 2),
	})
	require.NoError(t, err)
	assert.Len(t, ranged, 2)
}

func TestPostgresSourceNameUniqueness(t *testing.T) {
	db := startPostgres(t)
	sources := NewSourceRepository(db)

	owner := "2f0c8f6e-0000-4000-8000-000000000021"
	insertUser(t, db, owner, "sources@example.com")

	source := domain.Source{OwnerID: owner, Name: "Cash"}
	require.NoError(t, sources.Save(&source))

	// Case and surrounding whitespace do not make a name distinct.
	dup := domain.Source{OwnerID: owner, Name: "  CASH "}
	assert.Error(t, sources.Save(&dup))

	exists, err := sources.NameExistsForOwner(owner, domain.NormalizeName("  CASH "))
	require.NoError(t, err)
	assert.True(t, exists)

	names, err := sources.NamesForIDs(owner, []int64{source.ID})
	require.NoError(t, err)
	assert.Equal(t, []string{"Cash"}, names)
}
