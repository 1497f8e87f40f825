// Package domain holds the core types of the prompt version control
// system: prompt names and metadata, revision numbers, version pointers,
// resolved settings, and the sentinel errors shared across services and
// adapters. It has no dependencies on other packages in this module.
package domain
