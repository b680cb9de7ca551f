package filter_test

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/fennwick/brasserie/pkg/filter"
)

type dish struct {
	ID       uint
	Name     string
	Kind     string
	IsActive bool
	ServedAt time.Time
}

func newDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&dish{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	day := func(d string) time.Time {
		ts, _ := time.Parse("2006-01-02", d)
		return ts
	}
	rows := []dish{
		{Name: "Onion Soup", Kind: "starter", IsActive: true, ServedAt: day("2026-03-01")},
		{Name: "Steak Frites", Kind: "main", IsActive: true, ServedAt: day("2026-03-05")},
		{Name: "Old Special", Kind: "main", IsActive: false, ServedAt: day("2026-02-10")},
	}
	if err := db.Create(&rows).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	return db
}

func names(t *testing.T, db *gorm.DB, scopes ...filter.Scope) []string {
	t.Helper()
	var rows []dish
	if err := db.Scopes(scopes...).Order("id").Find(&rows).Error; err != nil {
		t.Fatalf("query: %v", err)
	}
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Name
	}
	return out
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	db := newDB(t)
	got := names(t, db, filter.Search("STEAK", "name"))
	if len(got) != 1 || got[0] != "Steak Frites" {
		t.Errorf("unexpected rows: %v", got)
	}
}

func TestSearchEmptyTermIsNoop(t *testing.T) {
	db := newDB(t)
	if got := names(t, db, filter.Search("  ", "name")); len(got) != 3 {
		t.Errorf("expected all rows, got: %v", got)
	}
}

func TestEq(t *testing.T) {
	db := newDB(t)
	if got := names(t, db, filter.Eq("kind", "main")); len(got) != 2 {
		t.Errorf("unexpected rows: %v", got)
	}
	if got := names(t, db, filter.Eq("kind", "")); len(got) != 3 {
		t.Errorf("empty value should be a no-op, got: %v", got)
	}
}

func TestEqUint(t *testing.T) {
	db := newDB(t)
	if got := names(t, db, filter.EqUint("id", 1)); len(got) != 1 {
		t.Errorf("unexpected rows: %v", got)
	}
	if got := names(t, db, filter.EqUint("id", 0)); len(got) != 3 {
		t.Errorf("zero should be a no-op, got: %v", got)
	}
}

func TestTrue(t *testing.T) {
	db := newDB(t)
	if got := names(t, db, filter.True("is_active", true)); len(got) != 2 {
		t.Errorf("unexpected rows: %v", got)
	}
	if got := names(t, db, filter.True("is_active", false)); len(got) != 3 {
		t.Errorf("apply=false should be a no-op, got: %v", got)
	}
}

func TestDateRangeInclusive(t *testing.T) {
	db := newDB(t)

	got := names(t, db, filter.DateFrom("served_at", "2026-03-01"))
	if len(got) != 2 {
		t.Errorf("DateFrom: %v", got)
	}

	// DateTo is inclusive of the named day.
	got = names(t, db, filter.DateTo("served_at", "2026-03-01"))
	if len(got) != 2 {
		t.Errorf("DateTo: %v", got)
	}

	got = names(t, db,
		filter.DateFrom("served_at", "2026-03-01"),
		filter.DateTo("served_at", "2026-03-04"),
	)
	if len(got) != 1 || got[0] != "Onion Soup" {
		t.Errorf("range: %v", got)
	}
}

func TestDateRangeRFC3339(t *testing.T) {
	db := newDB(t)

	got := names(t, db, filter.DateFrom("served_at", "2026-03-01T12:00:00Z"))
	if len(got) != 1 || got[0] != "Steak Frites" {
		t.Errorf("DateFrom: %v", got)
	}

	// An RFC3339 bound is the exact instant, inclusive.
	got = names(t, db, filter.DateTo("served_at", "2026-03-05T00:00:00Z"))
	if len(got) != 3 {
		t.Errorf("DateTo: %v", got)
	}
	got = names(t, db, filter.DateTo("served_at", "2026-03-04T23:59:59Z"))
	if len(got) != 2 {
		t.Errorf("DateTo exclusive of later rows: %v", got)
	}
}

func TestDateUnparseableIsNoop(t *testing.T) {
	db := newDB(t)
	if got := names(t, db, filter.DateFrom("served_at", "last tuesday")); len(got) != 3 {
		t.Errorf("unparseable date should be a no-op, got: %v", got)
	}
}
