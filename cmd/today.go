package cmd

import (
	"github.com/spf13/cobra"
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's anchors, score and streak",
	Long: `The "today" command applies the daily activation (advancing your
streak and rolling completions over to the new day), then prints today's
anchor schedule with each anchor's status.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return today(cmd)
	},
}

func today(cmd *cobra.Command) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	if _, err := client.ActivateDay(ctx); err != nil {
		return err
	}

	st, err := client.GetState(ctx)
	if err != nil {
		return err
	}

	cmd.Printf("%s (%s) — streak: %d day(s), sync score: %d%% (%s)\n\n",
		st.Name, st.Chronotype, st.Streak, st.Score.Percent, st.Score.Tier)
	for _, a := range st.Anchors {
		mark := " "
		if a.Completed {
			mark = "x"
		}
		cmd.Printf("[%s] %s  %s %s (%s)\n", mark, a.Time, a.Icon, a.Title, a.Status)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(todayCmd)
}
