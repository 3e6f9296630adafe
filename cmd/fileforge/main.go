package main

import "github.com/DevDeepakBhattarai/file-forge/internal/cli"

func main() {
	cli.Execute()
}
