package cmd

import (
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <anchor-id>",
	Short: "Toggle an anchor's completion",
	Long: `The "check" command flips the completion flag of one anchor, e.g.
"circadian check morning-light". Running it again unchecks the anchor.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return check(cmd, args[0])
	},
}

func check(cmd *cobra.Command, anchorID string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	resp, err := client.ToggleAnchor(cmd.Context(), anchorID)
	if err != nil {
		return err
	}

	state := "unchecked"
	if resp.Completed {
		state = "checked"
	}
	cmd.Printf("%s %s — sync score now %d%% (%s)\n",
		resp.AnchorID, state, resp.Score.Percent, resp.Score.Tier)
	return nil
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
