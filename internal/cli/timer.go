package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/momentum-labs/momentum/internal/daemon"
)

func init() {
	rootCmd.AddCommand(timerCmd)
}

var timerCmd = &cobra.Command{
	Use:   "timer <duration>",
	Short: "Record a completed focus session (e.g. 25m, 1h30m)",
	Args:  cobra.ExactArgs(1),
	RunE:  runTimer,
}

func runTimer(cmd *cobra.Command, args []string) error {
	elapsed, err := time.ParseDuration(args[0])
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", args[0], err)
	}

	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	if err := d.Engine.RecordTimerSession(int64(elapsed.Seconds())); err != nil {
		return err
	}

	unlocked, err := d.Engine.EvaluateAndUnlockAchievements()
	if err != nil {
		return err
	}

	state := d.Engine.State()
	fmt.Printf("Recorded %s of focus — %s total\n",
		elapsed, (time.Duration(state.TotalTimerSeconds) * time.Second))
	for _, a := range unlocked {
		fmt.Printf("%s  Achievement unlocked: %s (+%d XP)\n", a.Icon, a.Title, a.XPReward)
	}
	return nil
}
