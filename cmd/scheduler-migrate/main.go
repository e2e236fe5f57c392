// scheduler-migrate применяет или откатывает схему PostgreSQL планировщика
// задач через goose.
//
// Использование:
//
//	scheduler-migrate [-dsn DSN] up|down|status
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/shaiso/tasksched/internal/migrate"
)

func main() {
	var dsn string
	flag.StringVar(&dsn, "dsn", os.Getenv("TASKSCHED_DATABASE_URL"), "PostgreSQL connection string")
	flag.Parse()

	if dsn == "" {
		log.Fatal("[migrate] -dsn or TASKSCHED_DATABASE_URL must be set")
	}

	args := flag.Args()
	if len(args) != 1 {
		log.Fatal("[migrate] usage: scheduler-migrate [-dsn DSN] up|down|status")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var err error
	switch args[0] {
	case "up":
		err = migrate.Up(ctx, dsn)
	case "down":
		err = migrate.Down(ctx, dsn)
	case "status":
		var version int64
		version, err = migrate.Status(ctx, dsn)
		if err == nil {
			fmt.Printf("schema version: %d\n", version)
		}
	default:
		log.Fatalf("[migrate] unknown command %q: must be up, down or status", args[0])
	}

	if err != nil {
		log.Fatalf("[migrate] %s: %v", args[0], err)
	}
}
