//go:build !unix

package lock

import "os"

// Platforms without flock fall back on the O_EXCL create alone, which
// already serialises writers on a single filesystem.
func flockExclusive(_ *os.File) error { return nil }

func flockRelease(_ *os.File) error { return nil }
