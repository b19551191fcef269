package main

import "github.com/jfraser/whosaid/internal/cli"

func main() {
	cli.Execute()
}
