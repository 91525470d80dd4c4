package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/swifttrack/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupPackageRepositoryTest(t *testing.T) (*GormPackageRepository, *GormStatusUpdateRepository, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Package{}, &models.StatusUpdate{}); err != nil {
		t.Fatalf("migrate package/status_update failed: %v", err)
	}
	return NewPackageRepository(db), NewStatusUpdateRepository(db), db
}

func createTestPackage(t *testing.T, repo *GormPackageRepository, number string) *models.Package {
	t.Helper()
	pkg := &models.Package{
		TrackingNumber:  number,
		Status:          models.StatusCreated,
		CurrentLocation: "Shenzhen Warehouse",
		Destination:     "Seattle, WA",
	}
	if err := repo.Create(pkg); err != nil {
		t.Fatalf("create package failed: %v", err)
	}
	return pkg
}

func TestPackageCreateRejectsDuplicateTrackingNumber(t *testing.T) {
	repo, _, _ := setupPackageRepositoryTest(t)
	createTestPackage(t, repo, "SW12345678")

	dup := &models.Package{
		TrackingNumber:  "SW12345678",
		Status:          models.StatusCreated,
		CurrentLocation: "Dallas Warehouse",
		Destination:     "Austin, TX",
	}
	if err := repo.Create(dup); !errors.Is(err, ErrDuplicateTrackingNumber) {
		t.Fatalf("duplicate create want ErrDuplicateTrackingNumber got %v", err)
	}
}

func TestPackageGetByTrackingNumberNotFoundReturnsNil(t *testing.T) {
	repo, _, _ := setupPackageRepositoryTest(t)

	got, err := repo.GetByTrackingNumber("SW00000000")
	if err != nil {
		t.Fatalf("get by tracking number failed: %v", err)
	}
	if got != nil {
		t.Fatalf("missing package want nil got %+v", got)
	}
}

func TestPackageUpdateFieldsRefreshesLastUpdatedAndKeepsTrackingNumber(t *testing.T) {
	repo, _, db := setupPackageRepositoryTest(t)
	pkg := createTestPackage(t, repo, "SW11112222")

	past := time.Now().Add(-time.Hour)
	if err := db.Model(&models.Package{}).Where("id = ?", pkg.ID).
		Update("last_updated", past).Error; err != nil {
		t.Fatalf("backdate last_updated failed: %v", err)
	}

	err := repo.UpdateFields(pkg.ID, map[string]interface{}{
		"status":           models.StatusInTransit,
		"current_location": "Hong Kong Hub",
		"tracking_number":  "SW99999999",
	})
	if err != nil {
		t.Fatalf("update fields failed: %v", err)
	}

	got, err := repo.GetByID(pkg.ID)
	if err != nil {
		t.Fatalf("reload package failed: %v", err)
	}
	if got == nil {
		t.Fatalf("reload package got nil")
	}
	if got.TrackingNumber != "SW11112222" {
		t.Fatalf("tracking number must be immutable, got %s", got.TrackingNumber)
	}
	if got.Status != models.StatusInTransit {
		t.Fatalf("status want in_transit got %s", got.Status)
	}
	if got.CurrentLocation != "Hong Kong Hub" {
		t.Fatalf("location want Hong Kong Hub got %s", got.CurrentLocation)
	}
	if !got.LastUpdated.After(past) {
		t.Fatalf("last_updated not refreshed: %v", got.LastUpdated)
	}
}

func TestStatusUpdateListOrderedByTimestampAscending(t *testing.T) {
	repo, history, _ := setupPackageRepositoryTest(t)
	pkg := createTestPackage(t, repo, "SW33334444")

	base := time.Now().Add(-3 * time.Hour)
	entries := []models.StatusUpdate{
		{PackageID: pkg.ID, Status: models.StatusInTransit, Location: "Hong Kong Hub", Timestamp: base.Add(time.Hour)},
		{PackageID: pkg.ID, Status: models.StatusCreated, Location: "Shenzhen Warehouse", Timestamp: base},
		{PackageID: pkg.ID, Status: models.StatusDelivered, Location: "Seattle, WA", Timestamp: base.Add(2 * time.Hour)},
	}
	for i := range entries {
		if err := history.Create(&entries[i]); err != nil {
			t.Fatalf("create status update failed: %v", err)
		}
	}

	got, err := history.ListByPackageID(pkg.ID)
	if err != nil {
		t.Fatalf("list status updates failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("status updates want 3 got %d", len(got))
	}
	wantStatuses := []models.PackageStatus{models.StatusCreated, models.StatusInTransit, models.StatusDelivered}
	for i, want := range wantStatuses {
		if got[i].Status != want {
			t.Fatalf("index %d want %s got %s", i, want, got[i].Status)
		}
	}
}

func TestPackageTransactionRollsBackOnError(t *testing.T) {
	repo, _, db := setupPackageRepositoryTest(t)

	sentinel := errors.New("forced rollback")
	err := repo.Transaction(func(pkgs PackageRepository, history StatusUpdateRepository) error {
		if err := pkgs.Create(&models.Package{
			TrackingNumber:  "SW55556666",
			Status:          models.StatusCreated,
			CurrentLocation: "Los Angeles Warehouse",
			Destination:     "Portland, OR",
		}); err != nil {
			return err
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("transaction want sentinel error got %v", err)
	}

	var count int64
	if err := db.Model(&models.Package{}).Where("tracking_number = ?", "SW55556666").Count(&count).Error; err != nil {
		t.Fatalf("count packages failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("rolled back package count want 0 got %d", count)
	}
}
