package main

import (
	"github.com/elos-ai/google-search-mcp/cmd"
)

func main() {
	cmd.Execute()
}
