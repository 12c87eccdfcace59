// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - DocumentClient: Lists, fetches, uploads and deletes source documents
//   - TranslationClient: Fetches and uploads translations
//   - CopyTransClient: Starts and polls copy-translations jobs
//   - VersionChecker: Compares the server version with a known release
//   - Format: Reads and writes local documents of one project type
//   - DocumentScanner: Discovers local source documents
//   - ConfigStore: Project and user configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - Confirmer: Without it, runs proceed as if non-interactive.
//   - ProgressReporter: Without it, copy-translations progress is not shown.
//   - RunStore: Without it, run history is not recorded.
//   - GlossaryClient: Only needed by glossary push.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or format package
package driven
