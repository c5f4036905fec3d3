package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nearwave/nearwave/internal/setup"
	"github.com/nearwave/nearwave/internal/worker/match"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// WorkerLogDir specifies where worker log files are stored.
const WorkerLogDir = "logs/worker_logs"

func main() {
	if err := run(); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}

func run() error {
	app := &cli.Command{
		Name:  "worker",
		Usage: "Start the nearwave proximity matching worker",
		Commands: []*cli.Command{
			{
				Name:  "match",
				Usage: "Start matching sessions",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:    "users",
						Aliases: []string{"u"},
						Usage:   "User IDs to run matching sessions for (overrides config)",
					},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					runMatchWorker(ctx, c.StringSlice("users"))
					return nil
				},
			},
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return app.Run(ctx, os.Args)
}

// runMatchWorker starts the match worker with error recovery.
func runMatchWorker(ctx context.Context, users []string) {
	app, err := setup.InitializeApp(ctx, WorkerLogDir)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer app.Cleanup(ctx)

	workerLogger := app.LogManager.GetWorkerLogger("match_worker")

	for {
		select {
		case <-ctx.Done():
			workerLogger.Info("Context cancelled, stopping worker")
			return
		default:
			func() {
				defer func() {
					if r := recover(); r != nil {
						workerLogger.Error("Worker execution failed",
							zap.Any("panic", r),
						)
						workerLogger.Info("Restarting worker in 5 seconds...")
						time.Sleep(5 * time.Second)
					}
				}()

				w, err := match.New(app, users, workerLogger)
				if err != nil {
					workerLogger.Error("Failed to create match worker", zap.Error(err))
					time.Sleep(5 * time.Second)

					return
				}

				w.Start(ctx)
			}()
		}
	}
}
