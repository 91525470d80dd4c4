package main

import (
	"fmt"
	"time"

	"github.com/swifttrack/internal/config"
	"github.com/swifttrack/internal/logger"
	"github.com/swifttrack/internal/models"

	"github.com/shopspring/decimal"
)

// seedHistoryEntry 演示包裹的一条历史记录
type seedHistoryEntry struct {
	Status   models.PackageStatus
	Location string
	Notes    string
	AgeHours int // 距今小时数
}

// seedPackage 演示包裹及其完整历史
type seedPackage struct {
	TrackingNumber string
	Destination    string
	CustomerName   string
	CustomerEmail  string
	DeclaredValue  float64
	EstimatedDays  int // 预计送达距今天数，0 表示不设置
	History        []seedHistoryEntry
}

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	now := time.Now()

	// 演示包裹：覆盖各状态及多条历史
	packages := []seedPackage{
		{
			TrackingNumber: "SWDEMO10001A",
			Destination:    "Seattle, WA",
			CustomerName:   "Alice Chen",
			CustomerEmail:  "alice@example.com",
			DeclaredValue:  129.99,
			EstimatedDays:  3,
			History: []seedHistoryEntry{
				{Status: models.StatusCreated, Location: "Shenzhen Warehouse", Notes: "Package created", AgeHours: 96},
				{Status: models.StatusPickedUp, Location: "Shenzhen Warehouse", Notes: "Picked up by carrier", AgeHours: 90},
				{Status: models.StatusInTransit, Location: "Hong Kong Hub", Notes: "Departed origin facility", AgeHours: 72},
				{Status: models.StatusInTransit, Location: "Anchorage, AK", Notes: "Arrived at transit hub", AgeHours: 30},
			},
		},
		{
			TrackingNumber: "SWDEMO10002B",
			Destination:    "Portland, OR",
			CustomerName:   "Bob Martinez",
			CustomerEmail:  "bob@example.com",
			DeclaredValue:  45.50,
			EstimatedDays:  0,
			History: []seedHistoryEntry{
				{Status: models.StatusCreated, Location: "Los Angeles Warehouse", Notes: "Package created", AgeHours: 120},
				{Status: models.StatusPickedUp, Location: "Los Angeles Warehouse", Notes: "Picked up by carrier", AgeHours: 110},
				{Status: models.StatusInTransit, Location: "Sacramento, CA", Notes: "In transit", AgeHours: 70},
				{Status: models.StatusOutForDelivery, Location: "Portland, OR", Notes: "Out for delivery", AgeHours: 6},
			},
		},
		{
			TrackingNumber: "SWDEMO10003C",
			Destination:    "Austin, TX",
			CustomerName:   "Carol Wang",
			CustomerEmail:  "",
			DeclaredValue:  299.00,
			EstimatedDays:  0,
			History: []seedHistoryEntry{
				{Status: models.StatusCreated, Location: "Dallas Warehouse", Notes: "Package created", AgeHours: 200},
				{Status: models.StatusInTransit, Location: "Waco, TX", Notes: "In transit", AgeHours: 150},
				{Status: models.StatusDelivered, Location: "Austin, TX", Notes: "Delivered, signed by recipient", AgeHours: 100},
			},
		},
		{
			TrackingNumber: "SWDEMO10004D",
			Destination:    "Chicago, IL",
			CustomerName:   "",
			CustomerEmail:  "",
			DeclaredValue:  0,
			EstimatedDays:  7,
			History: []seedHistoryEntry{
				{Status: models.StatusCreated, Location: "New York Warehouse", Notes: "Package created", AgeHours: 48},
				{Status: models.StatusException, Location: "Newark, NJ", Notes: "Address verification required", AgeHours: 12},
			},
		},
	}

	for _, plan := range packages {
		if len(plan.History) == 0 {
			stdLog.Printf("Skip package %s: empty history", plan.TrackingNumber)
			continue
		}
		var existing models.Package
		if err := models.DB.Where("tracking_number = ?", plan.TrackingNumber).First(&existing).Error; err == nil {
			stdLog.Printf("Package already exists: %s", plan.TrackingNumber)
			continue
		}

		latest := plan.History[len(plan.History)-1]
		pkg := models.Package{
			TrackingNumber:  plan.TrackingNumber,
			Status:          latest.Status,
			CurrentLocation: latest.Location,
			Destination:     plan.Destination,
			CustomerName:    plan.CustomerName,
			CustomerEmail:   plan.CustomerEmail,
			DeclaredValue:   models.NewMoneyFromDecimal(decimal.NewFromFloat(plan.DeclaredValue)),
			LastUpdated:     now.Add(-time.Duration(latest.AgeHours) * time.Hour),
			CreatedAt:       now.Add(-time.Duration(plan.History[0].AgeHours) * time.Hour),
		}
		if plan.EstimatedDays > 0 {
			eta := now.AddDate(0, 0, plan.EstimatedDays)
			pkg.EstimatedDelivery = &eta
		}
		if err := models.DB.Create(&pkg).Error; err != nil {
			stdLog.Printf("Failed to create package %s: %v", plan.TrackingNumber, err)
			continue
		}

		for _, entry := range plan.History {
			update := models.StatusUpdate{
				PackageID: pkg.ID,
				Status:    entry.Status,
				Location:  entry.Location,
				Notes:     entry.Notes,
				Timestamp: now.Add(-time.Duration(entry.AgeHours) * time.Hour),
			}
			if err := models.DB.Create(&update).Error; err != nil {
				stdLog.Printf("Failed to create status update for %s: %v", plan.TrackingNumber, err)
			}
		}
		stdLog.Printf("Created package: %s (%d status updates)", plan.TrackingNumber, len(plan.History))
	}

	// 演示联系咨询
	contacts := []models.ContactSubmission{
		{
			Name:        "David Kim",
			Email:       "david@example.com",
			Message:     "My package SWDEMO10004D shows an exception. What do I need to do to confirm my address?",
			Resolved:    false,
			SubmittedAt: now.Add(-10 * time.Hour),
		},
		{
			Name:        "Emma Li",
			Email:       "emma@example.com",
			Message:     "Could you tell me whether you support weekend deliveries in the Portland area?",
			Resolved:    true,
			SubmittedAt: now.Add(-72 * time.Hour),
		},
	}

	for _, contact := range contacts {
		var existing models.ContactSubmission
		if err := models.DB.Where("email = ? AND message = ?", contact.Email, contact.Message).First(&existing).Error; err == nil {
			stdLog.Printf("Contact already exists: %s", contact.Email)
			continue
		}
		if err := models.DB.Create(&contact).Error; err != nil {
			stdLog.Printf("Failed to create contact %s: %v", contact.Email, err)
		} else {
			stdLog.Printf("Created contact: %s", contact.Email)
		}
	}

	fmt.Println("\n✅ Demo data created successfully!")
	fmt.Println("Summary:")
	fmt.Println("- 4 Packages (in_transit / out_for_delivery / delivered / exception)")
	fmt.Println("- 13 Status updates")
	fmt.Println("- 2 Contact submissions")
}
