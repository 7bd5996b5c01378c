package main

import "mddocs/internal/cli"

func main() {
	cli.Execute()
}
