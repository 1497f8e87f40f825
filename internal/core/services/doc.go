// Package services implements the core use cases behind the driving
// ports: drift detection, committing working prompts as numbered
// revisions, and checking committed revisions back out. Services talk
// to the filesystem only through driven ports.
package services
