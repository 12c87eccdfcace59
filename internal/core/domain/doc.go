// Package domain defines the core business entities for transync.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Resource: A source document as known by the translation server
//   - TranslationsResource: The translations of one document for one locale
//   - LocaleMapping: A server locale and its local alias
//   - ModuleDescriptor: One unit of a multi-module build
//   - PushOptions / PullOptions: Validated input for a sync run
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
