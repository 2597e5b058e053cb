package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/momentum-labs/momentum/internal/daemon"
)

func init() {
	achievementsCmd.AddCommand(achievementsAddCmd)
	achievementsCmd.AddCommand(achievementsUnlockCmd)
	achievementsAddCmd.Flags().StringVar(&achAddIcon, "icon", "🏅", "Icon for the achievement")
	achievementsAddCmd.Flags().Int64Var(&achAddXP, "xp", 25, "XP awarded on unlock")
	rootCmd.AddCommand(achievementsCmd)
}

var (
	achAddIcon string
	achAddXP   int64
)

var achievementsCmd = &cobra.Command{
	Use:     "achievements",
	Aliases: []string{"ach"},
	Short:   "List achievements and their unlock state",
	RunE:    runAchievements,
}

func runAchievements(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	state := d.Engine.State()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tXP\tUNLOCKED")
	for _, a := range state.Achievements {
		unlocked := "—"
		if a.Unlocked() {
			unlocked = a.UnlockedAt.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "%s\t%s %s\t%d\t%s\n", a.ID, a.Icon, a.Title, a.XPReward, unlocked)
	}
	return w.Flush()
}

var achievementsAddCmd = &cobra.Command{
	Use:   "add <id> <title> <description>",
	Short: "Add a custom achievement (unlocked manually, never automatically)",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := daemon.New()
		if err != nil {
			return err
		}
		defer d.Close()

		if err := d.Engine.AddCustomAchievement(args[0], args[1], args[2], achAddIcon, achAddXP); err != nil {
			return err
		}
		fmt.Printf("Added custom achievement %q\n", args[0])
		return nil
	},
}

var achievementsUnlockCmd = &cobra.Command{
	Use:   "unlock <id>",
	Short: "Manually unlock an achievement",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := daemon.New()
		if err != nil {
			return err
		}
		defer d.Close()

		a, err := d.Engine.UnlockAchievement(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s  Achievement unlocked: %s (+%d XP)\n", a.Icon, a.Title, a.XPReward)
		return nil
	},
}
