package main

import (
	"os"

	"github.com/metalinks/metalinks-deployer/internal/cli"
	"github.com/metalinks/metalinks-deployer/internal/domain"
)

func main() {
	os.Exit(cli.ExecuteScript(domain.MustDeployScript("v3")))
}
