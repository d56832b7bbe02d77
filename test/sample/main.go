package main

import (
	"github.com/spf13/cobra"

	"github.com/zostay/postbox/test/sample/cmd"
)

func main() {
	err := cmd.Execute()
	cobra.CheckErr(err)
}
