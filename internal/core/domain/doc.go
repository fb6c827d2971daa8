// Package domain defines the core business entities for MindFeed.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has no dependencies on adapters or external libraries beyond the
// standard library, keeping the retrieval logic portable and testable.
package domain
