// SPDX-License-Identifier: AGPL-3.0-only
//go:build !windows

package jobs

import "os"

func symbolicLink(src, dest string) error {
	return os.Symlink(src, dest)
}
