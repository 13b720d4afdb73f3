package main

import (
	"github.com/hotseat-games/millionaire/internal/cli"
)

func main() {
	cli.Execute()
}
