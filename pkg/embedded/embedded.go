// Package embedded provides embedded static assets for the application.
package embedded

import (
	_ "embed"
)

// Catalog is the default engine catalog compiled into the binary:
// - instrument universe metadata
// - risk bucket thresholds, labels and colors
// - questionnaire point weights
// - model portfolios per bucket
//
// Deployments may replace it at start-up with CATALOG_PATH.
//
//go:embed catalog.yaml
var Catalog []byte
