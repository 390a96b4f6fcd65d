package main

import (
	"fmt"
	"log"
	"os"

	"github.com/esimov/seamcarve/utils"
	"github.com/spf13/cobra"
)

const helpBanner = `
┌─┐┌─┐┌─┐┌┬┐┌─┐┌─┐┬─┐┬  ┬┌─┐
└─┐├┤ ├─┤│││├─┘├─┤├┬┘└┐┌┘├┤
└─┘└─┘┴ ┴┴ ┴└─┘┴ ┴┴└─ └┘ └─┘

Content aware image resize library.
    Version: %s

`

// Version indicates the current build version.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:           "seamcarve",
	Short:         "Content aware image resize",
	Long:          fmt.Sprintf(helpBanner, Version),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "JSON configuration file")
}

func main() {
	log.SetFlags(0)

	if err := rootCmd.Execute(); err != nil {
		log.Println(utils.DecorateText(fmt.Sprintf("\nError: %v", err), utils.ErrorMessage))
		os.Exit(1)
	}
}
