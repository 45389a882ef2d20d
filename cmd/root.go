package cmd

import (
	"github.com/spf13/cobra"
	"speech-translate/config"
)

func Root(config *config.Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "speech-translate",
		Short: "transcribe uploaded audio and translate the transcript",
	}
	rootCmd.AddCommand(server(config))
	rootCmd.AddCommand(events(config))
	return rootCmd
}
