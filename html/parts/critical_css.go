package parts

import _ "embed"

//go:embed critical.css
var criticalCSS string

// GetCriticalCSS returns the inline stylesheet of the storefront pages.
func GetCriticalCSS() string {
	return criticalCSS
}
