// Copyright © 2025 The Carbide authors

package main

import "github.com/carbidelang/carbide/cmd"

func main() {
	cmd.Execute()
}
