// Package web provides the embedded built-in portfolio templates. A site
// can override each of them by name through the templates table.
package web

import "embed"

// TemplatesFS embeds the web/templates/ directory. File names without the
// .html extension are the template names.
//
//go:embed templates/*.html
var TemplatesFS embed.FS
