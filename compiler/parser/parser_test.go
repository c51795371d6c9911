package parser

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIntrospect_ReadsModelFile(t *testing.T) {
	t.Parallel()

	res := Introspect(filepath.Join("testdata", "models"), "invoices")
	if !res.Model.IsReadable {
		t.Fatalf("expected fixture to be readable at %s", res.Model.FilePath)
	}
	if res.Model.Name != "Invoice" || res.Model.FileName != "invoice.ts" {
		t.Fatalf("unexpected identity %+v", res.Model)
	}
	if len(res.Model.Properties) != 12 {
		t.Fatalf("expected 12 properties, got %d", len(res.Model.Properties))
	}
	lines := res.Model.Properties[9]
	if lines.Name != "lines" || lines.Relation == nil || lines.Relation.DtoType != "InvoiceLineDto[]" {
		t.Fatalf("unexpected relation property %+v", lines)
	}
	if len(res.Lines) == 0 {
		t.Fatalf("expected source lines to be kept for import resolution")
	}
}

func TestIntrospect_Unreadable(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	res := Introspect(dir, "ghost")
	if res.Model.IsReadable {
		t.Fatalf("missing model must be unreadable")
	}
	if res.Model.Properties == nil || len(res.Model.Properties) != 0 {
		t.Fatalf("expected empty, non-nil property list")
	}
	if res.Model.FilePath != filepath.Join(dir, "ghost.ts") {
		t.Fatalf("unexpected path %q", res.Model.FilePath)
	}
	if res.Lines != nil {
		t.Fatalf("expected no lines for an unreadable model")
	}
}

func TestIntrospect_DirectoryIsNotReadable(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "post.ts"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if CanRead(filepath.Join(dir, "post.ts")) {
		t.Fatalf("a directory must not count as a readable model")
	}
}

func TestNewModelInfo_NestedName(t *testing.T) {
	t.Parallel()

	info := NewModelInfo("app/models", "admin/audit_logs")
	if info.Name != "AuditLog" {
		t.Fatalf("expected AuditLog, got %q", info.Name)
	}
	if info.Variable != "auditLogs" {
		t.Fatalf("expected auditLogs, got %q", info.Variable)
	}
	if info.FilePath != filepath.Join("app/models", "admin", "audit_log.ts") {
		t.Fatalf("unexpected path %q", info.FilePath)
	}
}

func TestIntrospectSource_CRLF(t *testing.T) {
	t.Parallel()

	src := "export default class Note extends BaseModel {\r\n  declare body: string\r\n}\r\n"
	res := IntrospectSource(NewModelInfo("", "note"), src)
	if !res.Model.IsReadable || len(res.Model.Properties) != 1 {
		t.Fatalf("unexpected result %+v", res.Model)
	}
	if res.Model.Properties[0].Types[0].Type != "string" {
		t.Fatalf("expected string, got %q", res.Model.Properties[0].Types[0].Type)
	}
}
