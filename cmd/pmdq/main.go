package main

import "github.com/mvp-joe/pmdo-query/internal/cli"

func main() {
	cli.Execute()
}
