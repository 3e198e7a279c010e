package main

import (
	"github.com/consensys/go-dfsched/pkg/cmd"
)

func main() {
	cmd.Execute()
}
