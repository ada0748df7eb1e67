// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command folioctl is the operator CLI: schema migrations, bootstrap users
// and session maintenance.
package main

import "github.com/taibuivan/folio/cmd/folioctl/commands"

func main() {
	commands.Execute()
}
