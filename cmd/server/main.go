package main

import (
	"github.com/spf13/cobra"

	_ "github.com/joho/godotenv/autoload"
)

const releaseVersion = "0.1.0"

func main() {
	cobra.CheckErr(newCmd().Execute())
}
