package catalog

import (
	"testing"

	"github.com/dentalcalc/backend/internal/domain/shared"
	"github.com/dentalcalc/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewService(t *testing.T) {
	clinicID := uuid.New()

	t.Run("creates service with hourly mode and default profit", func(t *testing.T) {
		svc, err := NewService(clinicID, "Composite Filling", decimal.NewFromFloat(0.75))
		require.NoError(t, err)
		assert.Equal(t, "Composite Filling", svc.Name)
		assert.Equal(t, FeeModeHourly, svc.FeeMode)
		assert.True(t, svc.UseDefaultProfit)
		assert.Empty(t, svc.Consumables)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewService(clinicID, "  ", decimal.NewFromInt(1))
		assert.Error(t, err)
	})

	t.Run("rejects negative chair time", func(t *testing.T) {
		_, err := NewService(clinicID, "Filling", decimal.NewFromInt(-1))
		assert.Error(t, err)
	})
}

func TestServiceSetDoctorFee(t *testing.T) {
	newSvc := func(t *testing.T) *Service {
		t.Helper()
		svc, err := NewService(uuid.New(), "Crown", decimal.NewFromInt(1))
		require.NoError(t, err)
		return svc
	}

	t.Run("hourly mode keeps only the hourly rate", func(t *testing.T) {
		svc := newSvc(t)
		err := svc.SetDoctorFee(FeeModeHourly, valueobject.NewMoneyEGPFromFloat(400), valueobject.ZeroEGP(), valueobject.NewPercentFromInt(0))
		require.NoError(t, err)
		assert.Equal(t, FeeModeHourly, svc.FeeMode)
		assert.Equal(t, 400.0, svc.DoctorHourlyRate.Float64())
		assert.True(t, svc.DoctorFixedFee.IsZero())
		assert.True(t, svc.DoctorPercentage.IsZero())
	})

	t.Run("switching modes zeroes stale parameters", func(t *testing.T) {
		svc := newSvc(t)
		require.NoError(t, svc.SetDoctorFee(FeeModeHourly, valueobject.NewMoneyEGPFromFloat(400), valueobject.ZeroEGP(), valueobject.NewPercentFromInt(0)))
		require.NoError(t, svc.SetDoctorFee(FeeModeFixed, valueobject.ZeroEGP(), valueobject.NewMoneyEGPFromFloat(250), valueobject.NewPercentFromInt(0)))
		assert.True(t, svc.DoctorHourlyRate.IsZero())
		assert.Equal(t, 250.0, svc.DoctorFixedFee.Float64())
	})

	t.Run("percentage at or above 100 is rejected", func(t *testing.T) {
		svc := newSvc(t)
		err := svc.SetDoctorFee(FeeModePercentage, valueobject.ZeroEGP(), valueobject.ZeroEGP(), valueobject.NewPercentFromInt(100))
		require.Error(t, err)
		assert.Equal(t, shared.ErrInvalidDoctorPercentage, err)
	})

	t.Run("valid percentage mode", func(t *testing.T) {
		svc := newSvc(t)
		require.NoError(t, svc.SetDoctorFee(FeeModePercentage, valueobject.ZeroEGP(), valueobject.ZeroEGP(), valueobject.NewPercentFromInt(20)))
		assert.Equal(t, FeeModePercentage, svc.FeeMode)
		assert.Equal(t, 20.0, svc.DoctorPercentage.Float64())
	})

	t.Run("unknown mode is rejected", func(t *testing.T) {
		svc := newSvc(t)
		assert.Error(t, svc.SetDoctorFee("commission", valueobject.ZeroEGP(), valueobject.ZeroEGP(), valueobject.NewPercentFromInt(0)))
	})
}

func TestServiceProfitOverride(t *testing.T) {
	svc, err := NewService(uuid.New(), "Veneer", decimal.NewFromInt(2))
	require.NoError(t, err)
	clinicDefault := valueobject.NewPercentFromInt(40)

	t.Run("uses clinic default when flag is on", func(t *testing.T) {
		assert.Equal(t, 40.0, svc.ProfitPercent(clinicDefault).Float64())
	})

	t.Run("custom override wins when flag is off", func(t *testing.T) {
		require.NoError(t, svc.SetProfitOverride(false, valueobject.NewPercentFromInt(25)))
		assert.Equal(t, 25.0, svc.ProfitPercent(clinicDefault).Float64())
	})

	t.Run("switching back to default clears custom percent", func(t *testing.T) {
		require.NoError(t, svc.SetProfitOverride(true, valueobject.NewPercentFromInt(0)))
		assert.True(t, svc.CustomProfitPercent.IsZero())
		assert.Equal(t, 40.0, svc.ProfitPercent(clinicDefault).Float64())
	})
}

func TestServiceReplaceLines(t *testing.T) {
	svc, err := NewService(uuid.New(), "Root Canal", decimal.NewFromFloat(1.5))
	require.NoError(t, err)

	t.Run("lines get the service ID", func(t *testing.T) {
		err := svc.ReplaceConsumables([]ServiceConsumable{
			{BaseEntity: shared.NewBaseEntity(), ConsumableID: uuid.New(), Quantity: decimal.NewFromFloat(0.5)},
		})
		require.NoError(t, err)
		require.Len(t, svc.Consumables, 1)
		assert.Equal(t, svc.ID, svc.Consumables[0].ServiceID)
	})

	t.Run("negative quantity rejected", func(t *testing.T) {
		err := svc.ReplaceMaterials([]ServiceMaterial{
			{BaseEntity: shared.NewBaseEntity(), MaterialID: uuid.New(), Quantity: decimal.NewFromInt(-1)},
		})
		assert.Error(t, err)
	})

	t.Run("negative equipment hours rejected", func(t *testing.T) {
		err := svc.ReplaceEquipment([]ServiceEquipment{
			{BaseEntity: shared.NewBaseEntity(), EquipmentID: uuid.New(), HoursUsed: decimal.NewFromInt(-2)},
		})
		assert.Error(t, err)
	})

	t.Run("replacing with empty set clears lines", func(t *testing.T) {
		require.NoError(t, svc.ReplaceConsumables(nil))
		assert.Empty(t, svc.Consumables)
	})
}

func TestConsumableUnitCost(t *testing.T) {
	clinicID := uuid.New()

	t.Run("derives unit cost from pack divisors", func(t *testing.T) {
		c, err := NewConsumable(clinicID, "Anesthetic carpules", valueobject.NewMoneyEGPFromFloat(600), 10, 6)
		require.NoError(t, err)
		// 600 / 10 / 6 = 10
		assert.True(t, c.UnitCost().Equal(decimal.NewFromInt(10)))
	})

	t.Run("zero divisors are rejected", func(t *testing.T) {
		_, err := NewConsumable(clinicID, "Gloves", valueobject.NewMoneyEGPFromFloat(100), 0, 6)
		require.Error(t, err)
		assert.Equal(t, shared.ErrInvalidPackDivisors, err)

		_, err = NewConsumable(clinicID, "Gloves", valueobject.NewMoneyEGPFromFloat(100), 10, 0)
		assert.Error(t, err)
	})
}

func TestDefaultCategories(t *testing.T) {
	clinicID := uuid.New()
	categories := DefaultCategories(clinicID)

	require.Len(t, categories, 9)
	assert.Equal(t, "Diagnostics & Prevention", categories[0].Name)
	assert.Equal(t, "Pediatric Dentistry", categories[8].Name)
	for i, c := range categories {
		assert.Equal(t, clinicID, c.ClinicID)
		assert.Equal(t, i, c.SortOrder)
	}
}

func TestLabMaterialValidation(t *testing.T) {
	clinicID := uuid.New()

	t.Run("valid material", func(t *testing.T) {
		m, err := NewLabMaterial(clinicID, "Zirconia crown", "SmileLab", valueobject.NewMoneyEGPFromFloat(900))
		require.NoError(t, err)
		assert.Equal(t, "SmileLab", m.LabName)
	})

	t.Run("rejects negative unit cost", func(t *testing.T) {
		_, err := NewLabMaterial(clinicID, "Crown", "Lab", valueobject.NewMoneyEGPFromFloat(-1))
		assert.Error(t, err)
	})
}
