package cmd

import (
	"os"

	"github.com/circadianhq/circadian/internal/apiclient"
	"github.com/circadianhq/circadian/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "circadian",
	Short: "Track daily circadian anchor habits",
	Long: `
	Circadian is a habit tracker for time-anchored daily behaviors: light
	exposure, meals, movement and digital sunset, derived from your wake-up
	time and bedtime. It tracks completion, a daily synchronization score,
	and a day streak.`,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// newClient builds an API client from config, picking up an optional API
// key from the environment.
func newClient() (*apiclient.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	c := apiclient.New(cfg.APIBaseURL)
	c.APIKey = os.Getenv("CIRCADIAN_API_KEY")
	return c, nil
}
