// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - SettingsStore: project settings persistence (mirascope.toml)
//   - VersionStore: working prompts, snapshots, and version pointer files
//   - TemplateRenderer: version metadata header rendering and extraction
//   - Formatter: canonical prompt-file formatting (best effort)
//   - Locker: exclusive per-prompt locking around mutations
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: any adapter package
package driven
