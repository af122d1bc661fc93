// Package acl holds the back-office role/page permission table.
//
// The table is plain data with a version so that reviewers can compare
// revisions; nothing is inferred from handler code.
package acl

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strings"
)

const (
	RoleManager        = "Manager"
	RoleSaleStaff      = "Sale Staff"
	RoleOperationStaff = "Operation Staff"
)

// DefaultVersion identifies the table returned by Default.
const DefaultVersion = "2024-frontend-v1"

// Table maps back-office pages to the roles allowed on them.
type Table struct {
	Version string              `json:"version"`
	Roles   []string            `json:"roles"`
	Access  map[string][]string `json:"access"`
	// EditPages grants create/update/delete beyond DefaultEditors.
	EditPages      map[string][]string `json:"edit_pages"`
	DefaultEditors []string            `json:"default_editors"`
}

// Default returns the shipped permission table.
func Default() *Table {
	all := []string{RoleManager, RoleSaleStaff, RoleOperationStaff}
	mo := []string{RoleManager, RoleOperationStaff}
	ms := []string{RoleManager, RoleSaleStaff}
	return &Table{
		Version: DefaultVersion,
		Roles:   all,
		Access: map[string][]string{
			"dashboard":       all,
			"preorder":        mo,
			"prescription":    ms,
			"delivered":       mo,
			"returns":         all,
			"products":        mo,
			"staff":           {RoleManager},
			"inventory":       mo,
			"shipper":         mo,
			"customersupport": ms,
			"support":         all,
			"changepassword":  all,
		},
		EditPages: map[string][]string{
			"preorder":  mo,
			"products":  mo,
			"delivered": mo,
			"shipper":   mo,
		},
		DefaultEditors: []string{RoleManager},
	}
}

// Load reads a table from a JSON file.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("acl: %w", err)
	}
	var t Table
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("acl %s: %w", path, err)
	}
	if t.Version == "" {
		return nil, fmt.Errorf("acl %s: missing version", path)
	}
	return &t, nil
}

// basePage strips the detail suffix: "products:42" -> "products".
func basePage(page string) string {
	base, _, _ := strings.Cut(page, ":")
	return base
}

// CanAccess reports whether role may open page. Unknown pages are denied.
func (t *Table) CanAccess(page, role string) bool {
	if page == "" || role == "" {
		return false
	}
	return slices.Contains(t.Access[basePage(page)], role)
}

// CanEdit reports whether role may modify data on page.
func (t *Table) CanEdit(role, page string) bool {
	if role == "" {
		return false
	}
	if page != "" {
		if editors, ok := t.EditPages[basePage(page)]; ok {
			return slices.Contains(editors, role)
		}
	}
	return slices.Contains(t.DefaultEditors, role)
}

// Pages lists the pages role may open, sorted.
func (t *Table) Pages(role string) []string {
	var out []string
	for page, roles := range t.Access {
		if slices.Contains(roles, role) {
			out = append(out, page)
		}
	}
	slices.Sort(out)
	return out
}
