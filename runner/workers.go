// SPDX-License-Identifier: AGPL-3.0-only
package runner

import "runtime"

func numCPU() int {
	return runtime.NumCPU()
}
