package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"printlog/models"
)

func setCreatedAt(t *testing.T, db *gorm.DB, printID uint, at time.Time) {
	t.Helper()
	err := db.Model(&models.Print{}).Where("id = ?", printID).Update("created_at", at).Error
	require.NoError(t, err)
}

func TestPrintRepository_CreateSnapshotsPrice(t *testing.T) {
	db := newTestDB(t)
	filaments := NewFilamentRepository(db)
	prints := NewPrintRepository(db)

	filamentID := mustCreateFilament(t, filaments, "PLA Schwarz", 20.00)

	id, err := prints.Create(CreatePrintParams{
		Name:           "Benchy",
		Uploader:       "alice",
		FilamentGrams:  250,
		FilamentTypeID: filamentID,
	})
	require.NoError(t, err)

	print, err := prints.GetByID(id)
	require.NoError(t, err)
	require.InDelta(t, 5.00, print.Price, 1e-9)
	require.Equal(t, models.PaymentOpen, print.PaymentStatus)

	// later catalog price changes must not touch the snapshot
	require.NoError(t, filaments.Update(filamentID, "PLA Schwarz", 30.00))

	print, err = prints.GetByID(id)
	require.NoError(t, err)
	require.InDelta(t, 5.00, print.Price, 1e-9)
	require.InDelta(t, 30.00, print.PricePerKG, 1e-9)
	require.Equal(t, "PLA Schwarz", print.FilamentName)
}

func TestPrintRepository_CreateWithMissingFilament(t *testing.T) {
	prints := NewPrintRepository(newTestDB(t))

	id, err := prints.Create(CreatePrintParams{
		Name:           "Orphan",
		Uploader:       "bob",
		FilamentGrams:  100,
		FilamentTypeID: 777,
	})
	require.NoError(t, err)

	var stored models.Print
	require.NoError(t, prints.db.First(&stored, "id = ?", id).Error)
	require.Zero(t, stored.Price)
}

func TestPrintRepository_UpdateRecomputesPrice(t *testing.T) {
	db := newTestDB(t)
	filaments := NewFilamentRepository(db)
	prints := NewPrintRepository(db)

	filamentID := mustCreateFilament(t, filaments, "PETG Transparent", 25.00)
	id, err := prints.Create(CreatePrintParams{
		Name:           "Vase",
		Uploader:       "alice",
		FilamentGrams:  200,
		FilamentTypeID: filamentID,
	})
	require.NoError(t, err)

	require.NoError(t, filaments.Update(filamentID, "PETG Transparent", 40.00))

	err = prints.Update(id, UpdatePrintParams{
		Name:           "Vase v2",
		Uploader:       "alice",
		Link:           "https://example.org/vase",
		FilamentGrams:  300,
		FilamentTypeID: filamentID,
		PaymentStatus:  models.PaymentPaid,
	})
	require.NoError(t, err)

	print, err := prints.GetByID(id)
	require.NoError(t, err)
	require.Equal(t, "Vase v2", print.Name)
	require.Equal(t, models.PaymentPaid, print.PaymentStatus)
	require.InDelta(t, 12.00, print.Price, 1e-9)
}

func TestPrintRepository_UpdatePaymentStatusChangesOnlyStatus(t *testing.T) {
	db := newTestDB(t)
	filaments := NewFilamentRepository(db)
	prints := NewPrintRepository(db)

	filamentID := mustCreateFilament(t, filaments, "PLA Weiss", 20.00)
	id, err := prints.Create(CreatePrintParams{
		Name:           "Bracket",
		Uploader:       "carol",
		Link:           "https://example.org/bracket",
		FilamentGrams:  80,
		FilamentTypeID: filamentID,
	})
	require.NoError(t, err)

	before, err := prints.GetByID(id)
	require.NoError(t, err)

	require.NoError(t, prints.UpdatePaymentStatus(id, models.PaymentPaid))

	after, err := prints.GetByID(id)
	require.NoError(t, err)
	require.Equal(t, models.PaymentPaid, after.PaymentStatus)

	after.PaymentStatus = before.PaymentStatus
	require.Equal(t, before, after)
}

func TestPrintRepository_GetAllFiltersAndOrder(t *testing.T) {
	db := newTestDB(t)
	filaments := NewFilamentRepository(db)
	prints := NewPrintRepository(db)

	filamentID := mustCreateFilament(t, filaments, "PLA Schwarz", 20.00)

	mk := func(name, uploader string, createdAt time.Time) uint {
		id, err := prints.Create(CreatePrintParams{
			Name:           name,
			Uploader:       uploader,
			FilamentGrams:  50,
			FilamentTypeID: filamentID,
		})
		require.NoError(t, err)
		setCreatedAt(t, db, id, createdAt)
		return id
	}

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	oldest := mk("first", "alice", base)
	mk("second", "bob", base.Add(24*time.Hour))
	newest := mk("third", "alice", base.Add(48*time.Hour))

	all, err := prints.GetAll("", "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, newest, all[0].ID)
	require.Equal(t, oldest, all[2].ID)

	alice, err := prints.GetAll("alice", "")
	require.NoError(t, err)
	require.Len(t, alice, 2)
	require.Equal(t, newest, alice[0].ID)
	require.Equal(t, oldest, alice[1].ID)
	for _, p := range alice {
		require.Equal(t, "alice", p.Uploader)
	}

	require.NoError(t, prints.UpdatePaymentStatus(oldest, models.PaymentPaid))
	paid, err := prints.GetAll("", string(models.PaymentPaid))
	require.NoError(t, err)
	require.Len(t, paid, 1)
	require.Equal(t, oldest, paid[0].ID)
}

func TestPrintRepository_GetByIDNotFound(t *testing.T) {
	prints := NewPrintRepository(newTestDB(t))

	_, err := prints.GetByID(31337)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestPrintRepository_Delete(t *testing.T) {
	db := newTestDB(t)
	filaments := NewFilamentRepository(db)
	prints := NewPrintRepository(db)

	filamentID := mustCreateFilament(t, filaments, "ABS Rot", 22.00)
	id, err := prints.Create(CreatePrintParams{
		Name:           "Gear",
		Uploader:       "dave",
		FilamentGrams:  40,
		FilamentTypeID: filamentID,
	})
	require.NoError(t, err)

	require.NoError(t, prints.Delete(id))

	_, err = prints.GetByID(id)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestPrintRepository_Uploaders(t *testing.T) {
	db := newTestDB(t)
	filaments := NewFilamentRepository(db)
	prints := NewPrintRepository(db)

	filamentID := mustCreateFilament(t, filaments, "PLA Schwarz", 20.00)
	for _, uploader := range []string{"carol", "alice", "bob", "alice"} {
		_, err := prints.Create(CreatePrintParams{
			Name:           "part",
			Uploader:       uploader,
			FilamentGrams:  10,
			FilamentTypeID: filamentID,
		})
		require.NoError(t, err)
	}

	uploaders, err := prints.Uploaders()
	require.NoError(t, err)
	require.Equal(t, []string{"alice", "bob", "carol"}, uploaders)
}

func TestPrintRepository_SummaryByUploader(t *testing.T) {
	db := newTestDB(t)
	filaments := NewFilamentRepository(db)
	prints := NewPrintRepository(db)

	filamentID := mustCreateFilament(t, filaments, "PLA Schwarz", 20.00)

	mk := func(uploader string, grams float64, paid bool) {
		id, err := prints.Create(CreatePrintParams{
			Name:           "part",
			Uploader:       uploader,
			FilamentGrams:  grams,
			FilamentTypeID: filamentID,
		})
		require.NoError(t, err)
		if paid {
			require.NoError(t, prints.UpdatePaymentStatus(id, models.PaymentPaid))
		}
	}

	mk("alice", 250, false) // 5.00 open
	mk("alice", 500, true)  // 10.00 paid
	mk("bob", 100, false)   // 2.00 open

	summary, err := prints.SummaryByUploader()
	require.NoError(t, err)
	require.Len(t, summary, 2)

	require.Equal(t, "alice", summary[0].Uploader)
	require.EqualValues(t, 2, summary[0].TotalPrints)
	require.InDelta(t, 5.00, summary[0].OpenAmount, 1e-9)
	require.InDelta(t, 10.00, summary[0].PaidAmount, 1e-9)
	require.InDelta(t, 15.00, summary[0].TotalAmount, 1e-9)

	require.Equal(t, "bob", summary[1].Uploader)
	require.EqualValues(t, 1, summary[1].TotalPrints)
	require.InDelta(t, 2.00, summary[1].OpenAmount, 1e-9)
	require.InDelta(t, 0, summary[1].PaidAmount, 1e-9)
}

func TestPrintRepository_Statistics(t *testing.T) {
	db := newTestDB(t)
	filaments := NewFilamentRepository(db)
	prints := NewPrintRepository(db)

	plaID := mustCreateFilament(t, filaments, "PLA Schwarz", 20.00)
	petgID := mustCreateFilament(t, filaments, "PETG Transparent", 25.00)

	mk := func(uploader string, grams float64, filamentID uint, createdAt time.Time) {
		id, err := prints.Create(CreatePrintParams{
			Name:           "part",
			Uploader:       uploader,
			FilamentGrams:  grams,
			FilamentTypeID: filamentID,
		})
		require.NoError(t, err)
		setCreatedAt(t, db, id, createdAt)
	}

	jan := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	feb := time.Date(2026, 2, 15, 9, 0, 0, 0, time.UTC)

	mk("alice", 250, plaID, jan) // 5.00
	mk("alice", 100, plaID, feb) // 2.00
	mk("bob", 400, petgID, feb)  // 10.00

	stats, err := prints.Statistics("", "")
	require.NoError(t, err)

	require.EqualValues(t, 3, stats.Totals.TotalPrints)
	require.InDelta(t, 750, stats.Totals.TotalFilament, 1e-9)
	require.InDelta(t, 17.00, stats.Totals.TotalCost, 1e-9)
	require.InDelta(t, 17.00/3, stats.Totals.AvgPricePerPrint, 1e-9)

	require.Equal(t, []models.MonthCount{
		{Month: "2026-01", Count: 1},
		{Month: "2026-02", Count: 2},
	}, stats.PrintsPerMonth)

	require.Equal(t, []models.FilamentMonthUsage{
		{Month: "2026-01", FilamentName: "PLA Schwarz", Grams: 250},
		{Month: "2026-02", FilamentName: "PETG Transparent", Grams: 400},
		{Month: "2026-02", FilamentName: "PLA Schwarz", Grams: 100},
	}, stats.FilamentOverTime)

	require.Len(t, stats.CostsPerMonth, 2)
	require.Equal(t, "2026-01", stats.CostsPerMonth[0].Month)
	require.InDelta(t, 5.00, stats.CostsPerMonth[0].TotalCost, 1e-9)
	require.InDelta(t, 12.00, stats.CostsPerMonth[1].TotalCost, 1e-9)

	require.Len(t, stats.TopUploaders, 2)
	require.Equal(t, "alice", stats.TopUploaders[0].Uploader)
	require.EqualValues(t, 2, stats.TopUploaders[0].PrintCount)
	require.InDelta(t, 350, stats.TopUploaders[0].TotalGrams, 1e-9)
	require.InDelta(t, 175, stats.TopUploaders[0].AvgGrams, 1e-9)

	require.Len(t, stats.AvgPerFilament, 2)
	require.Equal(t, "PETG Transparent", stats.AvgPerFilament[0].FilamentName)
	require.InDelta(t, 400, stats.AvgPerFilament[0].AvgGrams, 1e-9)
	require.Equal(t, "PLA Schwarz", stats.AvgPerFilament[1].FilamentName)
	require.InDelta(t, 175, stats.AvgPerFilament[1].AvgGrams, 1e-9)
}

func TestPrintRepository_StatisticsDateRange(t *testing.T) {
	db := newTestDB(t)
	filaments := NewFilamentRepository(db)
	prints := NewPrintRepository(db)

	filamentID := mustCreateFilament(t, filaments, "PLA Schwarz", 20.00)

	id, err := prints.Create(CreatePrintParams{
		Name:           "part",
		Uploader:       "alice",
		FilamentGrams:  250,
		FilamentTypeID: filamentID,
	})
	require.NoError(t, err)
	setCreatedAt(t, db, id, time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC))

	// inclusive bounds hit the record exactly
	stats, err := prints.Statistics("2026-01-15", "2026-01-15")
	require.NoError(t, err)
	require.EqualValues(t, 1, stats.Totals.TotalPrints)

	// a range excluding all records yields zeroed totals and empty lists
	stats, err = prints.Statistics("2027-01-01", "2027-12-31")
	require.NoError(t, err)
	require.EqualValues(t, 0, stats.Totals.TotalPrints)
	require.Zero(t, stats.Totals.TotalFilament)
	require.Zero(t, stats.Totals.TotalCost)
	require.Zero(t, stats.Totals.AvgPricePerPrint)
	require.Empty(t, stats.PrintsPerMonth)
	require.Empty(t, stats.FilamentOverTime)
	require.Empty(t, stats.CostsPerMonth)
	require.Empty(t, stats.TopUploaders)
	require.Empty(t, stats.AvgPerFilament)
}

// Mirrors the workshop's own acceptance walkthrough: seed, print, price
// change, re-check.
func TestPrintRepository_EndToEndSnapshot(t *testing.T) {
	db := newTestDB(t)
	filaments := NewFilamentRepository(db)
	prints := NewPrintRepository(db)

	filamentID := mustCreateFilament(t, filaments, "PLA Schwarz", 20.00)

	id, err := prints.Create(CreatePrintParams{
		Name:           "Benchy",
		Uploader:       "alice",
		FilamentGrams:  250,
		FilamentTypeID: filamentID,
	})
	require.NoError(t, err)

	print, err := prints.GetByID(id)
	require.NoError(t, err)
	require.InDelta(t, 5.00, print.Price, 1e-9)

	require.NoError(t, filaments.Update(filamentID, "PLA Schwarz", 30.00))

	print, err = prints.GetByID(id)
	require.NoError(t, err)
	require.InDelta(t, 5.00, print.Price, 1e-9)

	stats, err := prints.Statistics("", "")
	require.NoError(t, err)
	require.InDelta(t, 250, stats.Totals.TotalFilament, 1e-9)
	require.InDelta(t, 5.00, stats.Totals.TotalCost, 1e-9)
}
