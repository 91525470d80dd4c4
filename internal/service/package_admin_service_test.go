package service

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/swifttrack/internal/models"
	"github.com/swifttrack/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupPackageAdminServiceTest(t *testing.T) (*PackageAdminService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Package{}, &models.StatusUpdate{}, &models.ContactSubmission{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	svc := NewPackageAdminService(
		repository.NewPackageRepository(db),
		repository.NewStatusUpdateRepository(db),
		repository.NewContactRepository(db),
		nil,
	)
	return svc, db
}

func testPrincipal() Principal {
	return Principal{AdminID: 1, Username: "admin"}
}

func TestCreatePackageWritesInitialStatusUpdate(t *testing.T) {
	svc, db := setupPackageAdminServiceTest(t)

	pkg, err := svc.CreatePackage(testPrincipal(), CreatePackageInput{
		TrackingNumber:  "SW10000001",
		CurrentLocation: "Shenzhen Warehouse",
		Destination:     "Seattle, WA",
	})
	if err != nil {
		t.Fatalf("create package failed: %v", err)
	}
	if pkg.Status != models.StatusCreated {
		t.Fatalf("default status want created got %s", pkg.Status)
	}

	var updates []models.StatusUpdate
	if err := db.Where("package_id = ?", pkg.ID).Find(&updates).Error; err != nil {
		t.Fatalf("load status updates failed: %v", err)
	}
	if len(updates) != 1 {
		t.Fatalf("initial status updates want 1 got %d", len(updates))
	}
	if updates[0].Status != models.StatusCreated {
		t.Fatalf("initial entry status want created got %s", updates[0].Status)
	}
	if updates[0].Location != "Shenzhen Warehouse" {
		t.Fatalf("initial entry location want Shenzhen Warehouse got %s", updates[0].Location)
	}
	if updates[0].Notes != "Package created" {
		t.Fatalf("initial entry notes want 'Package created' got %q", updates[0].Notes)
	}
}

func TestCreatePackageGeneratesTrackingNumberWhenBlank(t *testing.T) {
	svc, _ := setupPackageAdminServiceTest(t)

	pkg, err := svc.CreatePackage(testPrincipal(), CreatePackageInput{
		CurrentLocation: "Dallas Warehouse",
		Destination:     "Austin, TX",
	})
	if err != nil {
		t.Fatalf("create package failed: %v", err)
	}
	if pkg.TrackingNumber == "" {
		t.Fatalf("tracking number not generated")
	}
	got, err := svc.packageRepo.GetByTrackingNumber(pkg.TrackingNumber)
	if err != nil {
		t.Fatalf("load generated package failed: %v", err)
	}
	if got == nil {
		t.Fatalf("generated package not retrievable: %s", pkg.TrackingNumber)
	}
}

func TestCreatePackageRejectsInvalidInput(t *testing.T) {
	svc, _ := setupPackageAdminServiceTest(t)

	if _, err := svc.CreatePackage(Principal{}, CreatePackageInput{
		CurrentLocation: "A",
		Destination:     "B",
	}); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("unauthenticated want ErrUnauthorized got %v", err)
	}

	if _, err := svc.CreatePackage(testPrincipal(), CreatePackageInput{
		Destination: "Austin, TX",
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("blank location want ErrInvalidInput got %v", err)
	}

	if _, err := svc.CreatePackage(testPrincipal(), CreatePackageInput{
		Status:          models.PackageStatus("teleported"),
		CurrentLocation: "Dallas Warehouse",
		Destination:     "Austin, TX",
	}); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("bad status want ErrInvalidStatus got %v", err)
	}
}

func TestCreatePackageRejectsInvalidCustomerEmail(t *testing.T) {
	svc, db := setupPackageAdminServiceTest(t)

	if _, err := svc.CreatePackage(testPrincipal(), CreatePackageInput{
		TrackingNumber:  "SW10000005",
		CurrentLocation: "Dallas Warehouse",
		Destination:     "Austin, TX",
		CustomerEmail:   "definitely not an email <script>",
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("bad customer email want ErrInvalidInput got %v", err)
	}

	var count int64
	if err := db.Model(&models.Package{}).Count(&count).Error; err != nil {
		t.Fatalf("count packages failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("invalid email must not persist a package, count=%d", count)
	}

	pkg, err := svc.CreatePackage(testPrincipal(), CreatePackageInput{
		TrackingNumber:  "SW10000005",
		CurrentLocation: "Dallas Warehouse",
		Destination:     "Austin, TX",
		CustomerEmail:   " alice@example.com ",
	})
	if err != nil {
		t.Fatalf("valid email create failed: %v", err)
	}
	if pkg.CustomerEmail != "alice@example.com" {
		t.Fatalf("customer email want alice@example.com got %q", pkg.CustomerEmail)
	}
}

func TestUpdatePackageRejectsInvalidCustomerEmail(t *testing.T) {
	svc, db := setupPackageAdminServiceTest(t)

	created, err := svc.CreatePackage(testPrincipal(), CreatePackageInput{
		TrackingNumber:  "SW10000006",
		CurrentLocation: "Dallas Warehouse",
		Destination:     "Austin, TX",
	})
	if err != nil {
		t.Fatalf("create package failed: %v", err)
	}

	bad := "not-an-email"
	if _, err := svc.UpdatePackage(testPrincipal(), created.TrackingNumber, PackageUpdate{
		CustomerEmail: &bad,
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("bad customer email want ErrInvalidInput got %v", err)
	}

	var saved models.Package
	if err := db.First(&saved, created.ID).Error; err != nil {
		t.Fatalf("reload package failed: %v", err)
	}
	if saved.CustomerEmail != "" {
		t.Fatalf("invalid email must not persist, got %q", saved.CustomerEmail)
	}
}

func TestCreatePackageDuplicateTrackingNumber(t *testing.T) {
	svc, _ := setupPackageAdminServiceTest(t)

	input := CreatePackageInput{
		TrackingNumber:  "SW10000002",
		CurrentLocation: "Dallas Warehouse",
		Destination:     "Austin, TX",
	}
	if _, err := svc.CreatePackage(testPrincipal(), input); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if _, err := svc.CreatePackage(testPrincipal(), input); !errors.Is(err, ErrDuplicateTrackingNumber) {
		t.Fatalf("duplicate want ErrDuplicateTrackingNumber got %v", err)
	}
}

func TestUpdatePackageStatusAppendsHistoryWithPostUpdateValues(t *testing.T) {
	svc, db := setupPackageAdminServiceTest(t)

	created, err := svc.CreatePackage(testPrincipal(), CreatePackageInput{
		TrackingNumber:  "SW10000003",
		CurrentLocation: "Shenzhen Warehouse",
		Destination:     "Seattle, WA",
		CustomerName:    "Alice Chen",
	})
	if err != nil {
		t.Fatalf("create package failed: %v", err)
	}

	status := models.StatusInTransit
	location := "Hong Kong Hub"
	updated, err := svc.UpdatePackage(testPrincipal(), "sw-1000 0003", PackageUpdate{
		Status:          &status,
		CurrentLocation: &location,
	})
	if err != nil {
		t.Fatalf("update package failed: %v", err)
	}
	if updated.Status != models.StatusInTransit {
		t.Fatalf("status want in_transit got %s", updated.Status)
	}
	if updated.CurrentLocation != "Hong Kong Hub" {
		t.Fatalf("location want Hong Kong Hub got %s", updated.CurrentLocation)
	}
	// 未提供的字段保持原值
	if updated.Destination != created.Destination || updated.CustomerName != "Alice Chen" {
		t.Fatalf("untouched fields changed: %+v", updated)
	}

	var updates []models.StatusUpdate
	if err := db.Where("package_id = ?", created.ID).Order("timestamp ASC, id ASC").Find(&updates).Error; err != nil {
		t.Fatalf("load status updates failed: %v", err)
	}
	if len(updates) != 2 {
		t.Fatalf("status updates want 2 got %d", len(updates))
	}
	latest := updates[len(updates)-1]
	if latest.Status != models.StatusInTransit || latest.Location != "Hong Kong Hub" {
		t.Fatalf("latest entry mismatch: %+v", latest)
	}
	if latest.Notes != "Status changed from created to in_transit; Location updated to Hong Kong Hub" {
		t.Fatalf("unexpected change notes: %q", latest.Notes)
	}
	// 包裹镜像字段与最新历史一致
	if updated.Status != latest.Status || updated.CurrentLocation != latest.Location {
		t.Fatalf("package fields diverge from latest entry")
	}
}

func TestUpdatePackageSilentFieldChangeSkipsHistory(t *testing.T) {
	svc, db := setupPackageAdminServiceTest(t)

	created, err := svc.CreatePackage(testPrincipal(), CreatePackageInput{
		TrackingNumber:  "SW10000004",
		CurrentLocation: "Dallas Warehouse",
		Destination:     "Austin, TX",
	})
	if err != nil {
		t.Fatalf("create package failed: %v", err)
	}

	email := "alice@example.com"
	updated, err := svc.UpdatePackage(testPrincipal(), created.TrackingNumber, PackageUpdate{
		CustomerEmail: &email,
	})
	if err != nil {
		t.Fatalf("silent update failed: %v", err)
	}
	if updated.CustomerEmail != email {
		t.Fatalf("customer email want %s got %s", email, updated.CustomerEmail)
	}

	var count int64
	if err := db.Model(&models.StatusUpdate{}).Where("package_id = ?", created.ID).Count(&count).Error; err != nil {
		t.Fatalf("count status updates failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("silent update must not append history, want 1 got %d", count)
	}
}

func TestUpdatePackageConcurrentWritersKeepStatusMirror(t *testing.T) {
	svc, db := setupPackageAdminServiceTest(t)
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql db failed: %v", err)
	}
	// 内存库收紧为单连接，并发事务在连接池处排队而不是各开各库
	sqlDB.SetMaxOpenConns(1)

	created, err := svc.CreatePackage(testPrincipal(), CreatePackageInput{
		TrackingNumber:  "SW10000007",
		CurrentLocation: "Shenzhen Warehouse",
		Destination:     "Seattle, WA",
	})
	if err != nil {
		t.Fatalf("create package failed: %v", err)
	}

	statuses := []models.PackageStatus{
		models.StatusPickedUp,
		models.StatusInTransit,
		models.StatusOutForDelivery,
		models.StatusDelivered,
		models.StatusException,
	}
	const writers = 8
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			status := statuses[i%len(statuses)]
			location := fmt.Sprintf("Hub %d", i)
			if _, err := svc.UpdatePackage(testPrincipal(), created.TrackingNumber, PackageUpdate{
				Status:          &status,
				CurrentLocation: &location,
			}); err != nil {
				t.Errorf("concurrent update %d failed: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	var pkg models.Package
	if err := db.First(&pkg, created.ID).Error; err != nil {
		t.Fatalf("reload package failed: %v", err)
	}
	var updates []models.StatusUpdate
	if err := db.Where("package_id = ?", created.ID).Order("timestamp ASC, id ASC").Find(&updates).Error; err != nil {
		t.Fatalf("load status updates failed: %v", err)
	}
	if len(updates) != writers+1 {
		t.Fatalf("status updates want %d got %d", writers+1, len(updates))
	}
	latest := updates[len(updates)-1]
	if pkg.Status != latest.Status || pkg.CurrentLocation != latest.Location {
		t.Fatalf("package diverges from latest entry: pkg=%s/%s latest=%s/%s",
			pkg.Status, pkg.CurrentLocation, latest.Status, latest.Location)
	}
}

func TestUpdatePackageNotFound(t *testing.T) {
	svc, _ := setupPackageAdminServiceTest(t)

	status := models.StatusDelivered
	if _, err := svc.UpdatePackage(testPrincipal(), "SW00000404", PackageUpdate{Status: &status}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing package want ErrNotFound got %v", err)
	}
}

func TestResolveContact(t *testing.T) {
	svc, db := setupPackageAdminServiceTest(t)

	contact := models.ContactSubmission{
		Name:    "David Kim",
		Email:   "david@example.com",
		Message: "Where is my package?",
	}
	if err := db.Create(&contact).Error; err != nil {
		t.Fatalf("create contact failed: %v", err)
	}

	if err := svc.ResolveContact(testPrincipal(), contact.ID); err != nil {
		t.Fatalf("resolve contact failed: %v", err)
	}
	if err := svc.ResolveContact(testPrincipal(), 4096); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing contact want ErrNotFound got %v", err)
	}
}
