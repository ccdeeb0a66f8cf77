package main

import "github.com/rockstardevs/ofxtree/internal/cli"

func main() {
	cli.Execute()
}
