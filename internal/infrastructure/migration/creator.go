package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const upSuffix = ".up.sql"

// MigrationFile describes a freshly created up/down pair.
type MigrationFile struct {
	Version     string
	Name        string
	Description string
	Timestamp   string
	UpPath      string
	DownPath    string
}

// CreateMigration writes a timestamped up/down SQL stub pair into
// migrationsDir, creating the directory if needed. The version prefix
// uses YYYYMMDDHHMMSS so lexical order matches creation order.
func CreateMigration(migrationsDir, name, description string) (*MigrationFile, error) {
	if err := os.MkdirAll(migrationsDir, 0755); err != nil {
		return nil, fmt.Errorf("create migrations directory: %w", err)
	}

	now := time.Now()
	version := now.Format("20060102150405")
	base := version + "_" + sanitizeName(name)

	mf := &MigrationFile{
		Version:     version,
		Name:        name,
		Description: description,
		Timestamp:   now.Format(time.RFC3339),
		UpPath:      filepath.Join(migrationsDir, base+upSuffix),
		DownPath:    filepath.Join(migrationsDir, base+".down.sql"),
	}

	if err := writeStub(mf.UpPath, mf.Name, mf.Timestamp, mf.Description, false); err != nil {
		return nil, err
	}
	if err := writeStub(mf.DownPath, mf.Name, mf.Timestamp, mf.Description, true); err != nil {
		// don't leave a half-created pair behind
		_ = os.Remove(mf.UpPath)
		return nil, err
	}

	return mf, nil
}

func writeStub(path, name, timestamp, description string, rollback bool) error {
	var b strings.Builder
	if rollback {
		fmt.Fprintf(&b, "-- Migration: %s (Rollback)\n", name)
	} else {
		fmt.Fprintf(&b, "-- Migration: %s\n", name)
	}
	fmt.Fprintf(&b, "-- Created: %s\n", timestamp)
	if rollback {
		fmt.Fprintf(&b, "-- Description: Rollback for %s\n\n", description)
		b.WriteString("-- Write your DOWN migration SQL here\n\n")
	} else {
		fmt.Fprintf(&b, "-- Description: %s\n\n", description)
		b.WriteString("-- Write your UP migration SQL here\n\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write migration stub %s: %w", path, err)
	}
	return nil
}

// sanitizeName lowercases a migration name and collapses runs of
// spaces, dashes and underscores into single underscores so the result
// is a safe file name segment.
func sanitizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			s := b.String()
			if len(s) > 0 && !strings.HasSuffix(s, "_") {
				b.WriteByte('_')
			}
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}

// ListMigrations returns the sorted base names of every migration pair
// in migrationsDir. A missing directory is treated as empty.
func ListMigrations(migrationsDir string) ([]string, error) {
	entries, err := os.ReadDir(migrationsDir)
	if os.IsNotExist(err) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read migrations directory: %w", err)
	}

	migrations := make([]string, 0, len(entries)/2)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), upSuffix) {
			continue
		}
		migrations = append(migrations, strings.TrimSuffix(entry.Name(), upSuffix))
	}
	sort.Strings(migrations)
	return migrations, nil
}
