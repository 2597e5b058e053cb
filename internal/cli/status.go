package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/momentum-labs/momentum/internal/daemon"
)

func init() {
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show level, XP, and streak progress",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	s := d.Engine.Summarize()

	fmt.Printf("Level %d — %d XP (%.0f%% to level %d, %d XP to go)\n",
		s.Level, s.XP, s.ProgressPct, s.Level+1, s.XPToNextLevel)
	fmt.Printf("Streak: %d day(s), active on %d day(s)\n", s.Streak, s.ActiveDays)
	fmt.Printf("Tasks completed: %d\n", s.TasksCompleted)
	fmt.Printf("Achievements: %d/%d unlocked\n", s.UnlockedAchievements, s.TotalAchievements)
	fmt.Printf("Rewards: %d/%d claimed\n", s.ClaimedRewards, s.TotalRewards)

	if d.Engine.Dirty() {
		fmt.Println("Note: latest changes are not yet persisted — run any command to retry.")
	}
	return nil
}
