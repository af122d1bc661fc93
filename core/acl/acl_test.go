package acl

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCanAccess(t *testing.T) {
	tbl := Default()
	tests := []struct {
		page, role string
		want       bool
	}{
		{"dashboard", RoleSaleStaff, true},
		{"preorder", RoleSaleStaff, false},
		{"preorder", RoleOperationStaff, true},
		{"products:frame-1", RoleOperationStaff, true},
		{"staff", RoleOperationStaff, false},
		{"orders", RoleManager, false},
		{"", RoleManager, false},
		{"dashboard", "", false},
	}
	for _, tt := range tests {
		if got := tbl.CanAccess(tt.page, tt.role); got != tt.want {
			t.Errorf("CanAccess(%q, %q) = %v, want %v", tt.page, tt.role, got, tt.want)
		}
	}
}

func TestCanEdit(t *testing.T) {
	tbl := Default()
	tests := []struct {
		role, page string
		want       bool
	}{
		{RoleManager, "staff", true},
		{RoleManager, "", true},
		{RoleOperationStaff, "products", true},
		{RoleOperationStaff, "products:frame-1", true},
		{RoleOperationStaff, "inventory", false},
		{RoleSaleStaff, "products", false},
		{RoleSaleStaff, "returns", false},
		{"", "products", false},
	}
	for _, tt := range tests {
		if got := tbl.CanEdit(tt.role, tt.page); got != tt.want {
			t.Errorf("CanEdit(%q, %q) = %v, want %v", tt.role, tt.page, got, tt.want)
		}
	}
}

func TestPages(t *testing.T) {
	got := Default().Pages(RoleSaleStaff)
	want := []string{"changepassword", "customersupport", "dashboard", "prescription", "returns", "support"}
	if len(got) != len(want) {
		t.Fatalf("Pages = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Pages[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "acl.json")
	body := `{"version":"v2","access":{"products":["Sale Staff"]},"default_editors":["Manager"]}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	tbl, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tbl.Version != "v2" || !tbl.CanAccess("products", RoleSaleStaff) {
		t.Errorf("loaded table = %+v", tbl)
	}

	if err := os.WriteFile(path, []byte(`{"access":{}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load without version: want error")
	}
	if _, err := Load(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("Load missing file: want error")
	}
}
