package main

import (
	"context"
	"fmt"
)

func cmdConfig(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: queuectl config [set KEY VALUE|get KEY]")
	}

	switch args[0] {
	case "set":
		if len(args) != 3 {
			return fmt.Errorf("usage: queuectl config set KEY VALUE")
		}
		return configSet(ctx, args[1], args[2])
	case "get":
		if len(args) != 2 {
			return fmt.Errorf("usage: queuectl config get KEY")
		}
		return configGet(ctx, args[1])
	default:
		return fmt.Errorf("unknown config subcommand %q", args[0])
	}
}

func configSet(ctx context.Context, key, value string) error {
	s, closeStore, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	if err := s.SetConfig(ctx, key, value); err != nil {
		return err
	}
	fmt.Printf("Set %s = %s\n", key, value)
	return nil
}

func configGet(ctx context.Context, key string) error {
	s, closeStore, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	value, ok, err := s.GetConfig(ctx, key)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("config key %q not found", key)
	}
	fmt.Printf("%s = %s\n", key, value)
	return nil
}
