package main

import (
	"github.com/thanhnguyen2187/d2-savior/cli"
)

func main() {
	cli.Start()
}
