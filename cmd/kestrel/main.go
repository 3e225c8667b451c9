package main

import "github.com/kestrel-ai/kestrel/internal/cli"

func main() {
	cli.Execute()
}
