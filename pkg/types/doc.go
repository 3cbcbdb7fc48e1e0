// Package types defines the storage contract, entity records, queue
// operation types, configuration, and standard errors shared by the
// Wayfarer storage backends and the data-access layer.
package types
