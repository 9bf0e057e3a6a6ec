package main

import "github.com/mvp-joe/dtxscan/internal/cli"

func main() {
	cli.Execute()
}
