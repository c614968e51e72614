package main

import (
	"skymesh/cli"
)

func main() {
	cli.Start()
}
