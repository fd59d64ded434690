// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command logscan analyzes log files, recovering malformed entries by a
// configurable policy.
package main

import "code.hybscloud.com/cond/internal/cli"

func main() {
	cli.Execute()
}
