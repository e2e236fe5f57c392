package cliclient

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

// NewTaskCmd создаёт группу команд для управления задачами.
func NewTaskCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage scheduled tasks",
	}

	cmd.AddCommand(
		newTaskSubmitCmd(clientFn, outputFn),
		newTaskListCmd(clientFn, outputFn),
		newTaskShowCmd(clientFn, outputFn),
		newTaskDeleteCmd(clientFn, outputFn),
		newTaskEnableCmd(clientFn, outputFn),
		newTaskDisableCmd(clientFn, outputFn),
	)

	return cmd
}

func newTaskSubmitCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	var (
		schedule     string
		at           string
		start        string
		end          string
		delay        time.Duration
		maxRetries   int
		retryDelay   time.Duration
		actionType   string
		message      string
		level        string
		chatID       int64
		rawAction    string
	)

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a new task",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			action, err := buildActionPayload(rawAction, actionType, message, level, chatID)
			if err != nil {
				return err
			}

			req := SubmitTaskRequest{
				Schedule: schedule,
				Action:   action,
			}

			switch schedule {
			case "once":
				if at == "" {
					return fmt.Errorf("--at is required for schedule=once")
				}
				parsed, err := time.Parse(time.RFC3339, at)
				if err != nil {
					return fmt.Errorf("invalid --at: %w", err)
				}
				req.NextRun = &parsed
			case "range":
				if start == "" || end == "" {
					return fmt.Errorf("--start and --end are required for schedule=range")
				}
				parsedStart, err := time.Parse(time.RFC3339, start)
				if err != nil {
					return fmt.Errorf("invalid --start: %w", err)
				}
				parsedEnd, err := time.Parse(time.RFC3339, end)
				if err != nil {
					return fmt.Errorf("invalid --end: %w", err)
				}
				req.Start = &parsedStart
				req.End = &parsedEnd
				if delay > 0 {
					req.DelayBetweenRunsMs = delay.Milliseconds()
				}
			default:
				return fmt.Errorf("--schedule must be \"once\" or \"range\"")
			}

			if cmd.Flags().Changed("max-retries") {
				req.MaxRetries = &maxRetries
			}
			if retryDelay > 0 {
				ms := retryDelay.Milliseconds()
				req.RetryDelayMs = &ms
			}

			result, err := client.SubmitTask(req)
			if err != nil {
				return err
			}

			out.Success(fmt.Sprintf("task submitted: %s", result.ID))
			out.Print([]string{"ID"}, [][]string{{result.ID}}, result)
			return nil
		},
	}

	cmd.Flags().StringVar(&schedule, "schedule", "once", "Schedule kind: once or range")
	cmd.Flags().StringVar(&at, "at", "", "Activation time for schedule=once (RFC3339)")
	cmd.Flags().StringVar(&start, "start", "", "Range start (RFC3339)")
	cmd.Flags().StringVar(&end, "end", "", "Range end (RFC3339, inclusive)")
	cmd.Flags().DurationVar(&delay, "delay", 0, "Delay between range activations (default 24h)")
	cmd.Flags().IntVar(&maxRetries, "max-retries", 0, "Override max retry attempts")
	cmd.Flags().DurationVar(&retryDelay, "retry-delay", 0, "Override base retry backoff delay")
	cmd.Flags().StringVar(&actionType, "action-type", "log", "Action type: log or send_bot_message")
	cmd.Flags().StringVar(&message, "message", "", "Message payload for log/send_bot_message actions")
	cmd.Flags().StringVar(&level, "level", "info", "Log level for action-type=log")
	cmd.Flags().Int64Var(&chatID, "chat-id", 0, "Chat ID for action-type=send_bot_message")
	cmd.Flags().StringVar(&rawAction, "action", "", "Raw {type,payload} action JSON, overrides the convenience flags above")

	return cmd
}

func buildActionPayload(rawAction, actionType, message, level string, chatID int64) (json.RawMessage, error) {
	if rawAction != "" {
		return json.RawMessage(rawAction), nil
	}

	switch actionType {
	case "log":
		payload, err := json.Marshal(struct {
			Message string `json:"message"`
			Level   string `json:"level"`
		}{Message: message, Level: level})
		if err != nil {
			return nil, err
		}
		return json.Marshal(struct {
			Type    string          `json:"type"`
			Payload json.RawMessage `json:"payload"`
		}{Type: "log", Payload: payload})
	case "send_bot_message":
		payload, err := json.Marshal(struct {
			ChatID  int64  `json:"chat_id"`
			Message string `json:"message"`
		}{ChatID: chatID, Message: message})
		if err != nil {
			return nil, err
		}
		return json.Marshal(struct {
			Type    string          `json:"type"`
			Payload json.RawMessage `json:"payload"`
		}{Type: "send_bot_message", Payload: payload})
	default:
		return nil, fmt.Errorf("unknown --action-type %q: must be \"log\" or \"send_bot_message\"", actionType)
	}
}

func newTaskListCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			tasks, err := client.ListTasks()
			if err != nil {
				return err
			}

			headers := []string{"ID", "SCHEDULE", "NEXT_RUN", "ENABLED", "RETRY_COUNT", "MAX_RETRIES"}
			rows := make([][]string, len(tasks))
			for i, t := range tasks {
				rows[i] = []string{
					t.ID, t.Schedule, t.NextRun.Format(time.RFC3339),
					strconv.FormatBool(t.Enabled),
					strconv.Itoa(t.RetryCount), strconv.Itoa(t.MaxRetries),
				}
			}

			out.Print(headers, rows, tasks)
			return nil
		},
	}

	return cmd
}

func newTaskShowCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show TASK_ID",
		Short: "Show a single task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			task, err := client.GetTask(args[0])
			if err != nil {
				return err
			}

			headers := []string{"ID", "SCHEDULE", "NEXT_RUN", "ENABLED", "RETRY_COUNT", "MAX_RETRIES", "ACTION"}
			rows := [][]string{{
				task.ID, task.Schedule, task.NextRun.Format(time.RFC3339),
				strconv.FormatBool(task.Enabled),
				strconv.Itoa(task.RetryCount), strconv.Itoa(task.MaxRetries),
				string(task.Action),
			}}

			out.Print(headers, rows, task)
			return nil
		},
	}

	return cmd
}

func newTaskDeleteCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete TASK_ID",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			if err := client.DeleteTask(args[0]); err != nil {
				return err
			}

			out.Success(fmt.Sprintf("task %s deleted", args[0]))
			return nil
		},
	}

	return cmd
}

func newTaskEnableCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "enable TASK_ID",
		Short: "Enable a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setTaskEnabled(clientFn(), outputFn(), args[0], true)
		},
	}
	return cmd
}

func newTaskDisableCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "disable TASK_ID",
		Short: "Disable a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setTaskEnabled(clientFn(), outputFn(), args[0], false)
		},
	}
	return cmd
}

func setTaskEnabled(client *Client, out *Output, id string, enabled bool) error {
	task, err := client.SetTaskEnabled(id, enabled)
	if err != nil {
		return err
	}

	out.Success(fmt.Sprintf("task %s enabled=%v", id, task.Enabled))
	out.Print([]string{"ID", "ENABLED"}, [][]string{{task.ID, strconv.FormatBool(task.Enabled)}}, task)
	return nil
}
