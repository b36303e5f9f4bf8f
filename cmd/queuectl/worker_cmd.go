package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/queuectl/queuectl/worker"
)

func cmdWorker(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: queuectl worker [start|stop|run]")
	}

	switch args[0] {
	case "start":
		return workerStart(ctx, args[1:])
	case "stop":
		return workerStop(ctx, args[1:])
	case "run":
		return workerRun(ctx, args[1:])
	default:
		return fmt.Errorf("unknown worker subcommand %q", args[0])
	}
}

func workerStart(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("worker start", flag.ExitOnError)
	count := fs.Int("count", 1, "number of workers to start")
	foreground := fs.Bool("foreground", false, "run one worker in the foreground")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *foreground {
		if *count > 1 {
			return fmt.Errorf("foreground mode only supports one worker")
		}
		fmt.Println("Starting worker in foreground mode (Ctrl+C to stop)...")
		return runWorkerForeground(ctx, "")
	}

	if *count < 1 {
		return fmt.Errorf("--count must be at least 1")
	}

	entries, err := cleanupDeadWorkers()
	if err != nil {
		return err
	}

	exePath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("resolve executable path: %w", err)
	}

	dataDir := filepath.Dir(exePath)
	if home, err := os.UserHomeDir(); err == nil {
		dataDir = filepath.Join(home, ".queuectl", "data")
		os.MkdirAll(dataDir, 0o755)
	}

	started := 0
	for i := 0; i < *count; i++ {
		workerID := fmt.Sprintf("worker-%d", len(entries)+i+1)

		logFile, err := os.OpenFile(filepath.Join(dataDir, workerID+".log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file for %s: %w", workerID, err)
		}

		cmd := exec.Command(exePath, "worker", "run", "--id", workerID)
		cmd.Stdout = logFile
		cmd.Stderr = logFile
		cmd.Stdin = nil
		cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

		if err := cmd.Start(); err != nil {
			logFile.Close()
			return fmt.Errorf("start worker %s: %w", workerID, err)
		}
		logFile.Close()

		entries = append(entries, workerEntry{PID: cmd.Process.Pid, WorkerID: workerID})
		fmt.Printf("Started worker %q (PID: %d)\n", workerID, cmd.Process.Pid)
		started++
	}

	if err := saveRegistry(entries); err != nil {
		return err
	}
	fmt.Printf("Started %d worker(s)\n", started)
	return nil
}

func workerStop(ctx context.Context, args []string) error {
	entries, err := cleanupDeadWorkers()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No workers running")
		return nil
	}

	stopped := 0
	for _, e := range entries {
		if err := syscall.Kill(e.PID, syscall.SIGTERM); err != nil {
			fmt.Printf("Warning: could not stop worker %q (PID %d): %v\n", e.WorkerID, e.PID, err)
			continue
		}
		fmt.Printf("Stopped worker %q (PID: %d)\n", e.WorkerID, e.PID)
		stopped++
	}

	time.Sleep(time.Second)
	if err := saveRegistry(nil); err != nil {
		return err
	}
	fmt.Printf("Stopped %d worker(s)\n", stopped)
	return nil
}

// workerRun is the entry point used by the detached process spawned
// by workerStart; it is also reachable directly for running a named
// worker without the registry.
func workerRun(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("worker run", flag.ExitOnError)
	id := fs.String("id", "", "worker identifier")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return runWorkerForeground(ctx, *id)
}

// runWorkerForeground runs a single worker until it receives SIGINT
// or SIGTERM, at which point it stops accepting new jobs and waits up
// to 30 seconds for the job currently in flight, if any, to finish
// before exiting.
func runWorkerForeground(ctx context.Context, id string) error {
	s, closeStore, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	log := slog.New(slog.NewTextHandler(os.Stdout, nil))
	w := worker.NewWorker(s, worker.Config{ID: id}, log)
	if err := w.Start(ctx); err != nil {
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	fmt.Fprintf(os.Stderr, "\n[%s] received shutdown signal, finishing current job...\n", w.ID())

	return w.Stop(30 * time.Second)
}
