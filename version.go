package storedesk

import _ "embed"

// Version is the release of the storedesk module.
//
//go:embed VERSION
var Version string
