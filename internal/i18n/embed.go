package i18n

import "embed"

// Locales holds the bundled locales/<language>.json message catalogs.
//
//go:embed locales/*.json
var Locales embed.FS
