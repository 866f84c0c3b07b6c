package db

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func TestOpenSQLiteAppliesEmbeddedMigrationsOnCleanDatabase(t *testing.T) {
	database := openTestDatabase(t, filepath.Join(t.TempDir(), "pregcare-clean.db"))

	for _, table := range []string{"profiles", "cycles", "symptoms", "cycle_analyses", "notifications", "notification_preferences", "schema_migrations"} {
		if !database.Migrator().HasTable(table) {
			t.Fatalf("expected table %s to exist", table)
		}
	}
	for _, index := range []string{
		"uidx_symptom_profile_date_type",
		"idx_cycles_profile_current",
		"idx_symptoms_profile_date",
		"uidx_cycle_analyses_profile_date",
		"uidx_notifications_profile_dedupe",
	} {
		var count int64
		if err := database.Raw(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'index' AND name = ?`, index).Scan(&count).Error; err != nil {
			t.Fatalf("lookup index %s: %v", index, err)
		}
		if count != 1 {
			t.Fatalf("expected index %s to exist", index)
		}
	}

	versions := loadMigrationVersions(t, database)
	if !reflect.DeepEqual(versions, []string{"0001", "0002", "0003", "0004"}) {
		t.Fatalf("expected migrations [0001 0002 0003 0004], got %v", versions)
	}
}

func TestOpenSQLiteMigrationBootstrapIsIdempotent(t *testing.T) {
	databasePath := filepath.Join(t.TempDir(), "pregcare-idempotent.db")

	firstOpen, err := OpenSQLite(databasePath, nil)
	if err != nil {
		t.Fatalf("first open sqlite: %v", err)
	}
	firstVersions := loadMigrationVersions(t, firstOpen)
	firstSQLDB, err := firstOpen.DB()
	if err != nil {
		t.Fatalf("first open sql db: %v", err)
	}
	if err := firstSQLDB.Close(); err != nil {
		t.Fatalf("close first sql db: %v", err)
	}

	secondOpen := openTestDatabase(t, databasePath)
	secondVersions := loadMigrationVersions(t, secondOpen)

	if !reflect.DeepEqual(firstVersions, secondVersions) {
		t.Fatalf("expected migration records to remain unchanged between boots, before=%v after=%v", firstVersions, secondVersions)
	}
}

func TestApplyMigrationsRunsInVersionOrderAndSkipsApplied(t *testing.T) {
	database := openBareDatabase(t)
	source := fstest.MapFS{
		"0002_add_rows.sql": {Data: []byte("INSERT INTO things(name) VALUES ('a');\nINSERT INTO things(name) VALUES ('b');")},
		"0001_things.sql":   {Data: []byte("CREATE TABLE things (name TEXT NOT NULL);")},
		"README.md":         {Data: []byte("not a migration")},
	}

	applied, err := applyMigrations(database, source)
	if err != nil {
		t.Fatalf("applyMigrations() unexpected error: %v", err)
	}
	if !reflect.DeepEqual(applied, []string{"0001", "0002"}) {
		t.Fatalf("expected [0001 0002] applied, got %v", applied)
	}

	applied, err = applyMigrations(database, source)
	if err != nil {
		t.Fatalf("second applyMigrations() unexpected error: %v", err)
	}
	if len(applied) != 0 {
		t.Fatalf("expected nothing applied on second run, got %v", applied)
	}

	var count int64
	if err := database.Raw(`SELECT COUNT(*) FROM things`).Scan(&count).Error; err != nil {
		t.Fatalf("count things: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 rows, got %d", count)
	}
}

func TestApplyMigrationsRejectsDuplicateVersions(t *testing.T) {
	database := openBareDatabase(t)
	source := fstest.MapFS{
		"0001_a.sql": {Data: []byte("CREATE TABLE a (id INTEGER);")},
		"0001_b.sql": {Data: []byte("CREATE TABLE b (id INTEGER);")},
	}

	_, err := applyMigrations(database, source)
	if err == nil || !strings.Contains(err.Error(), "duplicate migration version 0001") {
		t.Fatalf("expected duplicate version error, got %v", err)
	}
}

func TestApplyMigrationsRollsBackFailedFile(t *testing.T) {
	database := openBareDatabase(t)
	source := fstest.MapFS{
		"0001_broken.sql": {Data: []byte("CREATE TABLE ok (id INTEGER);\nCREATE TABLE broken (;")},
	}

	if _, err := applyMigrations(database, source); err == nil {
		t.Fatal("expected broken migration to fail")
	}
	if database.Migrator().HasTable("ok") {
		t.Fatal("expected failed migration to be rolled back")
	}
	if versions := loadMigrationVersions(t, database); len(versions) != 0 {
		t.Fatalf("expected no recorded versions, got %v", versions)
	}
}

func TestSplitSQLStatementsDropsEmptyParts(t *testing.T) {
	statements := splitSQLStatements("  CREATE TABLE a (id INTEGER);\n\n;  CREATE INDEX i ON a(id);  ")
	expected := []string{"CREATE TABLE a (id INTEGER)", "CREATE INDEX i ON a(id)"}
	if !reflect.DeepEqual(statements, expected) {
		t.Fatalf("expected %v, got %v", expected, statements)
	}
}

func openTestDatabase(t *testing.T, databasePath string) *gorm.DB {
	t.Helper()

	database, err := OpenSQLite(databasePath, nil)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return database
}

func openBareDatabase(t *testing.T) *gorm.DB {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "bare.db")
	database, err := gorm.Open(sqlite.Open(databasePath), &gorm.Config{})
	if err != nil {
		t.Fatalf("open bare sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open bare sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return database
}

func loadMigrationVersions(t *testing.T, database *gorm.DB) []string {
	t.Helper()

	versions := make([]string, 0)
	if err := database.Table("schema_migrations").Order("version ASC").Pluck("version", &versions).Error; err != nil {
		t.Fatalf("load migration versions: %v", err)
	}
	return versions
}
