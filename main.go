package main

import (
	"github.com/certivault/pdp-engine/cmd"
)

func main() {
	cmd.Execute()
}
