package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tbarantsev/email-insights/internal/core/domain"
)

func TestLoadSchemaReturnsDefaultsWithoutFile(t *testing.T) {
	schema, err := LoadSchema("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(schema.Fields) != len(domain.DefaultSchema().Fields) {
		t.Fatalf("expected full default field set, got %d fields", len(schema.Fields))
	}
}

func TestLoadSchemaOverridesAliases(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.yaml")
	content := "fields:\n  - name: routing_department\n    aliases: [\"dept\"]\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write schema file: %v", err)
	}

	schema, err := LoadSchema(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	spec, ok := schema.Field(domain.FieldDepartment)
	if !ok {
		t.Fatal("expected department field to survive override")
	}
	if len(spec.Aliases) != 1 || spec.Aliases[0] != "dept" {
		t.Fatalf("expected aliases [dept], got %v", spec.Aliases)
	}
}

func TestLoadSchemaKeepsOtherFieldAliases(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.yaml")
	content := "fields:\n  - name: urgency_level\n    aliases: [\"prio\"]\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write schema file: %v", err)
	}

	schema, err := LoadSchema(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	spec, _ := schema.Field(domain.FieldDepartment)
	want, _ := domain.DefaultSchema().Field(domain.FieldDepartment)
	if len(spec.Aliases) != len(want.Aliases) {
		t.Fatalf("expected untouched department aliases, got %v", spec.Aliases)
	}
}

func TestLoadSchemaRejectsUnknownField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.yaml")
	content := "fields:\n  - name: nonexistent\n    aliases: [\"x\"]\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write schema file: %v", err)
	}

	if _, err := LoadSchema(path); err == nil {
		t.Fatal("expected error for unknown field name")
	}
}

func TestLoadSchemaRejectsMissingFile(t *testing.T) {
	if _, err := LoadSchema(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
