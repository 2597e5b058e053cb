package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/momentum-labs/momentum/internal/daemon"
	"github.com/momentum-labs/momentum/internal/domain"
)

func init() {
	syncQueueCmd.Flags().StringArrayVar(&syncHeaders, "header", nil,
		"Request header as key=value (repeatable)")
	syncQueueCmd.Flags().StringVar(&syncBody, "body", "", "Request body")
	syncCmd.AddCommand(syncQueueCmd)
	syncCmd.AddCommand(syncPendingCmd)
	rootCmd.AddCommand(syncCmd)
}

var (
	syncHeaders []string
	syncBody    string
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Replay queued offline mutations against the network",
	RunE:  runSync,
}

func runSync(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	report, err := d.Sync.Drain(context.Background())
	if err != nil {
		return err
	}

	if report.Attempted == 0 {
		fmt.Println("Queue empty — nothing to replay.")
		return nil
	}

	fmt.Printf("Replayed %d operation(s): %d succeeded, %d requeued, %d dropped\n",
		report.Attempted, report.Succeeded, report.Requeued, report.PermanentFailures)
	for _, id := range report.FailedIDs {
		fmt.Printf("  dropped after retry ceiling: %s\n", id)
	}
	return nil
}

var syncQueueCmd = &cobra.Command{
	Use:   "queue <method> <url>",
	Short: "Queue a network mutation for deferred delivery",
	Args:  cobra.ExactArgs(2),
	RunE:  runSyncQueue,
}

func runSyncQueue(cmd *cobra.Command, args []string) error {
	headers := make(map[string]string, len(syncHeaders))
	for _, h := range syncHeaders {
		k, v, ok := strings.Cut(h, "=")
		if !ok {
			return fmt.Errorf("header %q is not key=value", h)
		}
		headers[k] = v
	}

	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	id, err := d.Queue.Enqueue(domain.SyncOperation{
		URL:     args[1],
		Method:  strings.ToUpper(args[0]),
		Headers: headers,
		Body:    []byte(syncBody),
	})
	if err != nil {
		return err
	}
	fmt.Printf("Queued %s %s as %s\n", strings.ToUpper(args[0]), args[1], id)
	return nil
}

var syncPendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "List operations waiting for replay",
	RunE:  runSyncPending,
}

func runSyncPending(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	pending, err := d.Queue.ListPending()
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		fmt.Println("Queue empty.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMETHOD\tURL\tQUEUED\tRETRIES")
	for _, op := range pending {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n",
			op.ID, op.Method, op.URL, op.Timestamp.Format("2006-01-02 15:04"), op.RetryCount)
	}
	return w.Flush()
}
