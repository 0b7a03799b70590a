// Package templates embeds the HTML page templates served by the web package.
package templates

import "embed"

//go:embed *.html pages/*.html
var FS embed.FS
