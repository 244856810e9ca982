package main

import (
	"github.com/OMEGA178/faktury/internal/cli"
)

func main() {
	cli.Execute()
}
