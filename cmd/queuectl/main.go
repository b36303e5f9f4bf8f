// Command queuectl is a CLI for the job queue: enqueueing shell
// commands, inspecting their state, managing the dead-letter queue,
// and starting or stopping worker processes.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		usage()
		return fmt.Errorf("no command given")
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "enqueue":
		return cmdEnqueue(ctx, rest)
	case "list":
		return cmdList(ctx, rest)
	case "show":
		return cmdShow(ctx, rest)
	case "status":
		return cmdStatus(ctx, rest)
	case "dequeue":
		return cmdDequeue(ctx, rest)
	case "clear":
		return cmdClear(ctx, rest)
	case "dlq":
		return cmdDLQ(ctx, rest)
	case "config":
		return cmdConfig(ctx, rest)
	case "worker":
		return cmdWorker(ctx, rest)
	case "help", "-h", "--help":
		usage()
		return nil
	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `queuectl - background job queue

Usage:
  queuectl enqueue --id ID --command CMD [flags]
  queuectl list [--state STATE]
  queuectl show JOB_ID
  queuectl status
  queuectl dequeue JOB_ID
  queuectl clear [--yes]
  queuectl dlq list
  queuectl dlq retry JOB_ID
  queuectl config set KEY VALUE
  queuectl config get KEY
  queuectl worker start [--count N] [--foreground]
  queuectl worker stop`)
}

// defaultDBPath returns $HOME/.queuectl/data/queuectl.db, creating the
// data directory if necessary.
func defaultDBPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	dir := filepath.Join(home, ".queuectl", "data")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create data directory: %w", err)
	}
	return filepath.Join(dir, "queuectl.db"), nil
}
