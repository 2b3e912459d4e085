package main

import (
	"os"

	"checkctl/internal/setupctl"
)

func main() {
	os.Exit(setupctl.Main())
}
