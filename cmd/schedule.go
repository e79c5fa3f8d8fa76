package cmd

import (
	"github.com/circadianhq/circadian/internal/server"
	"github.com/circadianhq/circadian/pkg/circadian"
	"github.com/spf13/cobra"
)

var (
	scheduleName       string
	scheduleChronotype string
	scheduleWake       string
	scheduleBed        string
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Update your sleep schedule and profile",
	Long: `The "schedule" command sets the wake-up time and bedtime that anchor
times are derived from, plus your display name and chronotype.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return schedule(cmd)
	},
}

func schedule(cmd *cobra.Command) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	views, err := client.PutSchedule(cmd.Context(), server.ScheduleRequest{
		Name:       scheduleName,
		Chronotype: circadian.Chronotype(scheduleChronotype),
		WakeUpTime: scheduleWake,
		Bedtime:    scheduleBed,
	})
	if err != nil {
		return err
	}

	cmd.Println("Schedule updated. Anchor times:")
	for _, a := range views {
		cmd.Printf("  %s  %s\n", a.Time, a.Title)
	}
	return nil
}

func init() {
	scheduleCmd.Flags().StringVar(&scheduleName, "name", "Friend", "display name")
	scheduleCmd.Flags().StringVar(&scheduleChronotype, "chronotype", "dove", "chronotype: lark, dove or owl")
	scheduleCmd.Flags().StringVar(&scheduleWake, "wake", "07:00", "wake-up time (HH:MM)")
	scheduleCmd.Flags().StringVar(&scheduleBed, "bed", "23:00", "bedtime (HH:MM)")
	rootCmd.AddCommand(scheduleCmd)
}
