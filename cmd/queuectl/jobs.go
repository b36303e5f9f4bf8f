package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/queuectl/queuectl/job"
	"github.com/queuectl/queuectl/store"
)

func cmdEnqueue(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("enqueue", flag.ExitOnError)
	id := fs.String("id", "", "unique job identifier (required)")
	command := fs.String("command", "", "shell command to execute (required)")
	maxRetries := fs.Uint("max-retries", 0, "maximum retry attempts (0 = use configured default)")
	timeout := fs.Int("timeout", 0, "execution timeout in seconds (0 = default of 20)")
	backoffBase := fs.Int("backoff-base", 0, "base for exponential backoff (0 = use configured default)")
	priority := fs.Int("priority", 0, "job priority, 1-10, higher is more urgent (0 = default of 5)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *id == "" || *command == "" {
		return fmt.Errorf("--id and --command are required")
	}

	s, closeStore, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	fields := store.Fields{
		ID:          *id,
		Command:     *command,
		MaxRetries:  uint32(*maxRetries),
		Timeout:     time.Duration(*timeout) * time.Second,
		BackoffBase: *backoffBase,
		Priority:    *priority,
	}
	if _, err := s.Enqueue(ctx, fields); err != nil {
		return err
	}
	fmt.Printf("Job %q enqueued\n", *id)
	return nil
}

func cmdList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	stateFlag := fs.String("state", "", "filter by state (pending, processing, completed, failed, dead)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	state := job.Unknown
	if *stateFlag != "" {
		var err error
		state, err = job.ParseState(*stateFlag)
		if err != nil {
			return err
		}
	}

	s, closeStore, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	jobs, err := s.List(ctx, state)
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		fmt.Println("No jobs found")
		return nil
	}

	w := newTable("ID", "COMMAND", "STATE", "ATTEMPTS", "PRIORITY", "WAIT", "EFFECTIVE", "CREATED")
	for _, j := range jobs {
		tableRow(w,
			j.ID,
			truncate(j.Command, 40),
			j.State.String(),
			fmt.Sprintf("%d/%d", j.Attempts, j.MaxRetries),
			fmt.Sprintf("%d", j.Priority),
			fmt.Sprintf("%d", j.WaitingTime),
			fmt.Sprintf("%d", j.Effective()),
			j.CreatedAt.Format("2006-01-02 15:04:05"),
		)
	}
	w.Flush()
	fmt.Printf("\nTotal: %d job(s)\n", len(jobs))
	return nil
}

func cmdShow(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: queuectl show JOB_ID")
	}
	id := args[0]

	s, closeStore, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	j, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if j == nil {
		return fmt.Errorf("job %q not found", id)
	}

	fmt.Printf("Job:          %s\n", j.ID)
	fmt.Printf("Command:      %s\n", j.Command)
	fmt.Printf("State:        %s\n", j.State)
	fmt.Printf("Attempts:     %d/%d\n", j.Attempts, j.MaxRetries)
	fmt.Printf("Priority:     %d\n", j.Priority)
	fmt.Printf("Waiting Time: %d\n", j.WaitingTime)
	fmt.Printf("Effective:    %d (priority + waiting_time)\n", j.Effective())
	fmt.Printf("Timeout:      %s\n", j.Timeout)
	if j.ExecutionTime != nil {
		fmt.Printf("Exec Time:    %s\n", *j.ExecutionTime)
	}
	fmt.Printf("Created:      %s\n", j.CreatedAt.Format(time.RFC3339))
	fmt.Printf("Updated:      %s\n", j.UpdatedAt.Format(time.RFC3339))
	if j.ErrorMessage != "" {
		fmt.Printf("\nError:\n%s\n", j.ErrorMessage)
	}
	if j.Output != "" {
		fmt.Printf("\nOutput:\n%s\n", j.Output)
	}
	return nil
}

func cmdStatus(ctx context.Context, args []string) error {
	s, closeStore, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	counts, err := s.Status(ctx)
	if err != nil {
		return err
	}

	fmt.Println("QueueCTL Status")
	fmt.Println("---------------")
	fmt.Printf("Total:       %d\n", counts.Total)
	fmt.Printf("Pending:     %d\n", counts.Pending)
	fmt.Printf("Processing:  %d\n", counts.Processing)
	fmt.Printf("Completed:   %d\n", counts.Completed)
	fmt.Printf("Failed:      %d\n", counts.Failed)
	fmt.Printf("Dead (DLQ):  %d\n", counts.Dead)
	return nil
}

func cmdDequeue(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: queuectl dequeue JOB_ID")
	}
	id := args[0]

	s, closeStore, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	ok, err := s.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("job %q not found", id)
	}
	fmt.Printf("Job %q removed\n", id)
	return nil
}

func cmdClear(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("clear", flag.ExitOnError)
	yes := fs.Bool("yes", false, "skip confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if !*yes {
		fmt.Print("This will delete ALL jobs. Are you sure? [y/N] ")
		reader := bufio.NewReader(os.Stdin)
		line, _ := reader.ReadString('\n')
		if line != "y\n" && line != "Y\n" {
			fmt.Println("Aborted")
			return nil
		}
	}

	s, closeStore, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	if err := s.ClearAll(ctx); err != nil {
		return err
	}
	fmt.Println("All jobs cleared")
	return nil
}
