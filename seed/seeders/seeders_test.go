package seeders

import (
	"context"
	"testing"

	"github.com/vooky-app/vooky_api/model"
	"github.com/vooky-app/vooky_api/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestSeedAllIsIdempotent(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:seeders?mode=memory&cache=shared"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatal(err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	dbSvc := &services.DatabaseService{}
	if err := dbSvc.UseDB(db, services.DriverSqlite); err != nil {
		t.Fatal(err)
	}

	seeder := NewMainSeeder(dbSvc)
	opts := LearnerOptions{Name: "Demo", Email: "demo@vooky.dev", Password: "secret"}

	first, err := seeder.SeedAll(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	second, err := seeder.SeedAll(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.ID != second.ID {
		t.Errorf("learner recreated: %d then %d", first.ID, second.ID)
	}

	counts := map[string]struct {
		model interface{}
		want  int64
	}{
		"courses": {&model.Course{}, 1},
		"levels":  {&model.Level{}, 2},
		"lessons": {&model.Lesson{}, 6},
		"images":  {&model.Image{}, 15},
		"badges":  {&model.Badge{}, 3},
		"users":   {&model.User{}, 1},
	}
	for name, c := range counts {
		var got int64
		if err := db.Model(c.model).Count(&got).Error; err != nil {
			t.Fatal(err)
		}
		if got != c.want {
			t.Errorf("%s = %d, want %d", name, got, c.want)
		}
	}
}
