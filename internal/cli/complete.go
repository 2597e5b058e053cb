package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/momentum-labs/momentum/internal/daemon"
	"github.com/momentum-labs/momentum/internal/domain"
)

func init() {
	completeCmd.Flags().StringVar(&completeQuadrant, "quadrant", "do_first",
		"Eisenhower quadrant: do_first, schedule, delegate, eliminate")
	completeCmd.Flags().BoolVar(&completeDayDone, "day-complete", false,
		"All tasks planned for today are now done")
	rootCmd.AddCommand(completeCmd)
}

var (
	completeQuadrant string
	completeDayDone  bool
)

var completeCmd = &cobra.Command{
	Use:   "complete <title>",
	Short: "Record a task completion",
	Args:  cobra.ExactArgs(1),
	RunE:  runComplete,
}

func runComplete(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	task := domain.Task{
		Title:    args[0],
		Quadrant: domain.Quadrant(completeQuadrant),
	}
	if err := d.Engine.RecordTaskCompletion(task, time.Now(), completeDayDone); err != nil {
		return err
	}

	unlocked, err := d.Engine.EvaluateAndUnlockAchievements()
	if err != nil {
		return err
	}

	s := d.Engine.Summarize()
	fmt.Printf("Completed %q — %d task(s) total, streak %d day(s)\n",
		task.Title, s.TasksCompleted, s.Streak)
	for _, a := range unlocked {
		fmt.Printf("%s  Achievement unlocked: %s (+%d XP)\n", a.Icon, a.Title, a.XPReward)
	}
	return nil
}
