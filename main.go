package main

import (
	"github.com/locr-dev/locr/cmd"
)

func main() {
	cmd.Execute()
}
