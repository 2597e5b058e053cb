package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/momentum-labs/momentum/internal/daemon"
)

func init() {
	rootCmd.AddCommand(rewardsCmd)
	rootCmd.AddCommand(claimCmd)
}

var rewardsCmd = &cobra.Command{
	Use:   "rewards",
	Short: "List rewards and their claim state",
	RunE:  runRewards,
}

func runRewards(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	state := d.Engine.State()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tXP COST\tCLAIMED")
	for _, r := range state.Rewards {
		claimed := "—"
		if r.Claimed {
			claimed = r.ClaimedAt.Format("2006-01-02 15:04")
		}
		reach := ""
		if state.XP < r.XPCost {
			reach = " (locked)"
		}
		fmt.Fprintf(w, "%s\t%s %s\t%d%s\t%s\n", r.ID, r.Icon, r.Title, r.XPCost, reach, claimed)
	}
	return w.Flush()
}

var claimCmd = &cobra.Command{
	Use:   "claim <reward-id>",
	Short: "Claim a reward",
	Args:  cobra.ExactArgs(1),
	RunE:  runClaim,
}

func runClaim(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	r, err := d.Engine.ClaimReward(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("%s  Claimed: %s\n", r.Icon, r.Title)
	return nil
}
