package cmd

import (
	"github.com/spf13/cobra"
	"speech-translate/config"
	server2 "speech-translate/server"
)

func events(config *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "events",
		Short: "consume and log transcription events",
		Run: func(cmd *cobra.Command, args []string) {
			server2.RunEvents(config)
		},
	}
}
