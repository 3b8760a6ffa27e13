package dashboard

import "embed"

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static/css/*.css
var staticFS embed.FS
