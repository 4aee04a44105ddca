package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMigrationFilenamePattern(t *testing.T) {
	tests := []struct {
		filename string
		valid    bool
		version  string
		name     string
	}{
		{"0001_init_schema.sql", true, "0001", "init_schema"},
		{"0012_add_sales_indexes.sql", true, "0012", "add_sales_indexes"},
		{"001_invalid.sql", false, "", ""},       // wrong number format
		{"0001_test", false, "", ""},             // missing .sql
		{"0001.sql", false, "", ""},              // missing name
		{"invalid_0001_test.sql", false, "", ""}, // wrong order
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			matches := migrationPattern.FindStringSubmatch(tt.filename)
			if tt.valid {
				if matches == nil {
					t.Fatalf("expected %s to match", tt.filename)
				}
				if matches[1] != tt.version || matches[2] != tt.name {
					t.Errorf("got version=%s name=%s, want %s/%s", matches[1], matches[2], tt.version, tt.name)
				}
			} else if matches != nil {
				t.Errorf("expected %s not to match", tt.filename)
			}
		})
	}
}

func TestReadMigrationsSortsAndChecksums(t *testing.T) {
	dir := t.TempDir()
	write := func(name, sql string) {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(sql), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("0002_add_indexes.sql", "CREATE INDEX idx ON sales_fact (date_id);")
	write("0001_init_schema.sql", "CREATE TABLE products (product_id SERIAL);")
	write("README.md", "not a migration")

	migrations, err := readMigrations(dir)
	if err != nil {
		t.Fatal(err)
	}

	if len(migrations) != 2 {
		t.Fatalf("expected 2 migrations, got %d", len(migrations))
	}
	if migrations[0].Version != 1 || migrations[1].Version != 2 {
		t.Errorf("migrations out of order: %d, %d", migrations[0].Version, migrations[1].Version)
	}
	if migrations[0].Name != "init_schema" {
		t.Errorf("unexpected name %q", migrations[0].Name)
	}
	if migrations[0].Checksum == "" || migrations[0].Checksum == migrations[1].Checksum {
		t.Error("checksums should be non-empty and content-dependent")
	}
}

func TestReadMigrationsChecksumIsStable(t *testing.T) {
	dir := t.TempDir()
	sql := "CREATE TABLE date_dim (date_id SERIAL);"
	if err := os.WriteFile(filepath.Join(dir, "0001_dates.sql"), []byte(sql), 0o644); err != nil {
		t.Fatal(err)
	}

	first, err := readMigrations(dir)
	if err != nil {
		t.Fatal(err)
	}
	second, err := readMigrations(dir)
	if err != nil {
		t.Fatal(err)
	}

	if first[0].Checksum != second[0].Checksum {
		t.Error("same content should produce the same checksum")
	}
}
