// Package common holds constants shared across the repository.
package common

// PackageName is used as the metrics namespace and in log attributes.
const PackageName = "omega-protocol"

// Version is set at build time via -ldflags.
var Version = "dev"
