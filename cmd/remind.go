package cmd

import (
	"fmt"
	"time"

	"github.com/circadianhq/circadian/internal/config"
	"github.com/circadianhq/circadian/internal/remind"
	"github.com/circadianhq/circadian/internal/remind/resend"
	"github.com/spf13/cobra"
)

var (
	resendApiKey string
	notifyEmail  string
	remindWindow time.Duration
)

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Email a reminder for anchors due within the reminder window",
	Long: `The "remind" command checks which anchors come up within the
configured window and emails a single reminder covering them. It is meant
to be run from cron.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if resendApiKey = config.ResendAPIKey(); resendApiKey == "" {
			return fmt.Errorf("CIRCADIAN_RESEND_API_KEY environment variable is not set")
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("error loading config: %v", err)
		}
		if notifyEmail = cfg.NotifyEmail; notifyEmail == "" {
			return fmt.Errorf("notify_email is not set in config")
		}
		remindWindow = time.Duration(cfg.RemindWindowMins) * time.Minute
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		n := &resend.ResendNotifier{
			ApiKey: resendApiKey,
			Email:  notifyEmail,
		}
		return remind.Remind(cmd.Context(), client, n, time.Now(), remindWindow)
	},
}

func init() {
	rootCmd.AddCommand(remindCmd)
}
