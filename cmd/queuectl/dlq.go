package main

import (
	"context"
	"fmt"
)

func cmdDLQ(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: queuectl dlq [list|retry JOB_ID]")
	}

	switch args[0] {
	case "list":
		return dlqList(ctx)
	case "retry":
		if len(args) != 2 {
			return fmt.Errorf("usage: queuectl dlq retry JOB_ID")
		}
		return dlqRetry(ctx, args[1])
	default:
		return fmt.Errorf("unknown dlq subcommand %q", args[0])
	}
}

func dlqList(ctx context.Context) error {
	s, closeStore, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	jobs, err := s.DLQList(ctx)
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		fmt.Println("Dead Letter Queue is empty")
		return nil
	}

	w := newTable("ID", "COMMAND", "ATTEMPTS", "ERROR", "FAILED AT")
	for _, j := range jobs {
		w2 := j.UpdatedAt.Format("2006-01-02 15:04:05")
		tableRow(w, j.ID, truncate(j.Command, 30), fmt.Sprintf("%d", j.Attempts), truncate(j.ErrorMessage, 40), w2)
	}
	w.Flush()
	fmt.Printf("\nTotal: %d job(s) in DLQ\n", len(jobs))
	return nil
}

func dlqRetry(ctx context.Context, id string) error {
	s, closeStore, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	if err := s.DLQRetry(ctx, id); err != nil {
		return err
	}
	fmt.Printf("Job %q moved back to pending\n", id)
	return nil
}
