package main

import "mist/internal/cli"

func main() {
	cli.Execute()
}
