package services

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/vooky-app/vooky_api/shared"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDatabase(t *testing.T) *DatabaseService {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatal(err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatal(err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	ds := &DatabaseService{}
	if err := ds.UseDB(db, DriverSqlite); err != nil {
		t.Fatal(err)
	}
	return ds
}

func TestDBRateLimitBlocksAfterBudget(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	svc := NewDBRateLimitService(newTestDatabase(t), func() time.Time { return now })
	svc.SetLimit(shared.EndpointLessonResult, 3, time.Hour)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		allowed, info, err := svc.IsAllowed(ctx, "user:7", shared.EndpointLessonResult)
		if err != nil {
			t.Fatal(err)
		}
		if !allowed {
			t.Fatalf("request %d rejected", i)
		}
		if info.Remaining != 3-i {
			t.Errorf("request %d: remaining = %d, want %d", i, info.Remaining, 3-i)
		}
	}

	allowed, info, err := svc.IsAllowed(ctx, "user:7", shared.EndpointLessonResult)
	if err != nil {
		t.Fatal(err)
	}
	if allowed || info.BlockedUntil == nil {
		t.Fatalf("fourth request should be blocked, got allowed=%v info=%+v", allowed, info)
	}

	allowed, _, _ = svc.IsAllowed(ctx, "user:8", shared.EndpointLessonResult)
	if !allowed {
		t.Error("other users must keep their own budget")
	}

	now = now.Add(30 * time.Minute)
	if allowed, _, _ := svc.IsAllowed(ctx, "user:7", shared.EndpointLessonResult); allowed {
		t.Error("user should still be blocked")
	}

	now = now.Add(2 * time.Hour)
	allowed, info, err = svc.IsAllowed(ctx, "user:7", shared.EndpointLessonResult)
	if err != nil {
		t.Fatal(err)
	}
	if !allowed || info.Remaining != 2 {
		t.Errorf("expected a fresh window after the block, got allowed=%v remaining=%d", allowed, info.Remaining)
	}
}

func TestUnknownEndpointIsAllowed(t *testing.T) {
	svc := NewDBRateLimitService(newTestDatabase(t), nil)

	allowed, info, err := svc.IsAllowed(context.Background(), "ip:1.2.3.4", "unknown")
	if err != nil {
		t.Fatal(err)
	}
	if !allowed || info.Remaining != -1 {
		t.Errorf("unexpected result allowed=%v info=%+v", allowed, info)
	}
	if svc.Message("unknown") == "" {
		t.Error("expected a fallback message")
	}
}
