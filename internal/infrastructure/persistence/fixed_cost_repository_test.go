package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dentalcalc/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockFixedCostRepository creates a GormFixedCostRepository with a mocked SQL connection
func newMockFixedCostRepository(t *testing.T) (*GormFixedCostRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormFixedCostRepository(gormDB), mock, mockDB
}

func TestGormFixedCostRepository_FindByIDForClinic(t *testing.T) {
	t.Run("finds row within the clinic", func(t *testing.T) {
		repo, mock, mockDB := newMockFixedCostRepository(t)
		defer mockDB.Close()

		costID := uuid.New()
		clinicID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "clinic_id", "category", "amount", "included", "notes"}).
			AddRow(costID, clinicID, "Rent", decimal.NewFromInt(20000), true, "")

		mock.ExpectQuery(`SELECT \* FROM "fixed_costs" WHERE clinic_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(clinicID, costID, 1).
			WillReturnRows(rows)

		cost, err := repo.FindByIDForClinic(context.Background(), clinicID, costID)

		assert.NoError(t, err)
		require.NotNil(t, cost)
		assert.Equal(t, costID, cost.ID)
		assert.Equal(t, "Rent", cost.Category)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("another clinic's row reads as not found", func(t *testing.T) {
		repo, mock, mockDB := newMockFixedCostRepository(t)
		defer mockDB.Close()

		costID := uuid.New()
		clinicID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "fixed_costs" WHERE clinic_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(clinicID, costID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		cost, err := repo.FindByIDForClinic(context.Background(), clinicID, costID)

		assert.Nil(t, cost)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormFixedCostRepository_FindAllForClinic(t *testing.T) {
	t.Run("lists rows with default filter", func(t *testing.T) {
		repo, mock, mockDB := newMockFixedCostRepository(t)
		defer mockDB.Close()

		clinicID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "clinic_id", "category", "amount", "included", "notes"}).
			AddRow(uuid.New(), clinicID, "Rent", decimal.NewFromInt(20000), true, "").
			AddRow(uuid.New(), clinicID, "Utilities", decimal.NewFromInt(3000), true, "")

		mock.ExpectQuery(`SELECT \* FROM "fixed_costs" WHERE clinic_id = \$1 ORDER BY created_at ASC LIMIT .*`).
			WithArgs(clinicID, 50).
			WillReturnRows(rows)

		costs, err := repo.FindAllForClinic(context.Background(), clinicID, shared.DefaultFilter())

		assert.NoError(t, err)
		assert.Len(t, costs, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects unknown sort column", func(t *testing.T) {
		repo, mock, mockDB := newMockFixedCostRepository(t)
		defer mockDB.Close()

		clinicID := uuid.New()
		filter := shared.DefaultFilter()
		filter.OrderBy = "amount; DROP TABLE fixed_costs"

		rows := sqlmock.NewRows([]string{"id", "clinic_id", "category", "amount", "included", "notes"})

		// Injected column falls back to the default ordering
		mock.ExpectQuery(`SELECT \* FROM "fixed_costs" WHERE clinic_id = \$1 ORDER BY created_at ASC LIMIT .*`).
			WithArgs(clinicID, 50).
			WillReturnRows(rows)

		_, err := repo.FindAllForClinic(context.Background(), clinicID, filter)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormFixedCostRepository_Delete(t *testing.T) {
	t.Run("deletes existing row", func(t *testing.T) {
		repo, mock, mockDB := newMockFixedCostRepository(t)
		defer mockDB.Close()

		costID := uuid.New()

		mock.ExpectExec(`DELETE FROM "fixed_costs" WHERE id = \$1`).
			WithArgs(costID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(context.Background(), costID))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row reads as not found", func(t *testing.T) {
		repo, mock, mockDB := newMockFixedCostRepository(t)
		defer mockDB.Close()

		costID := uuid.New()

		mock.ExpectExec(`DELETE FROM "fixed_costs" WHERE id = \$1`).
			WithArgs(costID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(context.Background(), costID), shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestValidateSortFieldFixedCost(t *testing.T) {
	t.Run("allows whitelisted field", func(t *testing.T) {
		assert.Equal(t, "amount", ValidateSortField("amount", FixedCostSortFields, "created_at"))
	})

	t.Run("falls back on unknown field", func(t *testing.T) {
		assert.Equal(t, "created_at", ValidateSortField("1; DELETE", FixedCostSortFields, "created_at"))
	})

	t.Run("normalizes direction", func(t *testing.T) {
		assert.Equal(t, "DESC", ValidateSortOrder("desc"))
		assert.Equal(t, "ASC", ValidateSortOrder("sideways"))
	})
}
