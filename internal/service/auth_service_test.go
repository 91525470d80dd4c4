package service

import (
	"errors"
	"testing"

	"github.com/swifttrack/internal/config"
	"github.com/swifttrack/internal/models"
	"github.com/swifttrack/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthServiceTest(t *testing.T) (*AuthService, *models.Admin) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Admin{}); err != nil {
		t.Fatalf("migrate admin failed: %v", err)
	}

	cfg := &config.Config{}
	cfg.JWT.SecretKey = "0123456789abcdef0123456789abcdef"
	cfg.JWT.ExpireHours = 24
	svc := NewAuthService(cfg, repository.NewAdminRepository(db))

	hash, err := svc.HashPassword("correct-password")
	if err != nil {
		t.Fatalf("hash password failed: %v", err)
	}
	admin := &models.Admin{Username: "admin", PasswordHash: hash}
	if err := db.Create(admin).Error; err != nil {
		t.Fatalf("create admin failed: %v", err)
	}
	return svc, admin
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	svc, seeded := setupAuthServiceTest(t)

	admin, token, expiresAt, err := svc.Login(" admin ", "correct-password")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if admin.ID != seeded.ID {
		t.Fatalf("admin id want %d got %d", seeded.ID, admin.ID)
	}
	if token == "" || expiresAt.IsZero() {
		t.Fatalf("token or expiry missing")
	}
	if admin.LastLoginAt == nil {
		t.Fatalf("last login not recorded")
	}

	claims, err := svc.ParseJWT(token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.AdminID != seeded.ID || claims.Username != "admin" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if _, err := svc.VerifyClaims(claims); err != nil {
		t.Fatalf("verify claims failed: %v", err)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)

	if _, _, _, err := svc.Login("admin", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("bad password want ErrInvalidCredentials got %v", err)
	}
	if _, _, _, err := svc.Login("nobody", "correct-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user want ErrInvalidCredentials got %v", err)
	}
}

func TestChangePasswordRevokesOldTokens(t *testing.T) {
	svc, seeded := setupAuthServiceTest(t)

	_, token, _, err := svc.Login("admin", "correct-password")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	claims, err := svc.ParseJWT(token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}

	if err := svc.ChangePassword(seeded.ID, "wrong-password", "next-password"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("wrong old password want ErrInvalidPassword got %v", err)
	}
	if err := svc.ChangePassword(seeded.ID, "correct-password", "short"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("short new password want ErrInvalidInput got %v", err)
	}
	if err := svc.ChangePassword(seeded.ID, "correct-password", "next-password"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}

	// 改密后旧 token 的版本号不再匹配
	if _, err := svc.VerifyClaims(claims); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("old claims want ErrUnauthorized got %v", err)
	}

	if _, _, _, err := svc.Login("admin", "next-password"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
}
