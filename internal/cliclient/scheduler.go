package cliclient

import (
	"strconv"

	"github.com/spf13/cobra"
)

// NewSchedulerCmd создаёт группу команд для управления фоновым опросом.
func NewSchedulerCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scheduler",
		Short: "Control the background polling loop",
	}

	cmd.AddCommand(
		newSchedulerStartCmd(clientFn, outputFn),
		newSchedulerStopCmd(clientFn, outputFn),
		newSchedulerStatusCmd(clientFn, outputFn),
	)

	return cmd
}

func newSchedulerStartCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the background polling loop",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			status, err := client.StartScheduler()
			if err != nil {
				return err
			}

			printSchedulerStatus(out, status)
			return nil
		},
	}
}

func newSchedulerStopCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the background polling loop",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			status, err := client.StopScheduler()
			if err != nil {
				return err
			}

			printSchedulerStatus(out, status)
			return nil
		},
	}
}

func newSchedulerStatusCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether the polling loop is running",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			status, err := client.SchedulerStatus()
			if err != nil {
				return err
			}

			printSchedulerStatus(out, status)
			return nil
		},
	}
}

func printSchedulerStatus(out *Output, status *SchedulerStatusResponse) {
	out.Print(
		[]string{"RUNNING"},
		[][]string{{strconv.FormatBool(status.Running)}},
		status,
	)
}
