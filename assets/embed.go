// assets/embed.go
//
// Embedded browser client, served by the binary itself so a deployment
// stays a single artifact.

package assets

import "embed"

//go:embed index.html app.js style.css
var FS embed.FS
