package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/arthrokinetix/content-adapters/internal/process"
)

func main() {
	app := &cli.App{
		Name:  "content-adapters",
		Usage: "normalize HTML, plain-text, and PDF articles into one standardized document shape",
		Commands: []*cli.Command{
			{
				Name:      "process",
				Usage:     "normalize a single file and print the document as JSON",
				ArgsUsage: "<file>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "type", Usage: "content type hint (html|text|pdf); sniffed when omitted"},
					&cli.StringFlag{Name: "config", Usage: "adapter config YAML"},
					&cli.StringFlag{Name: "db", Usage: "sqlite document store path (optional)"},
					&cli.BoolFlag{Name: "language", Usage: "detect document language"},
					&cli.BoolFlag{Name: "quiet", Usage: "errors only"},
				},
				Action: process.ProcessAction,
			},
			{
				Name:      "batch",
				Usage:     "normalize many files with a worker pool",
				ArgsUsage: "<file> [<file>...]",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "type", Usage: "content type hint for all files; sniffed per file when omitted"},
					&cli.StringFlag{Name: "config", Usage: "adapter config YAML"},
					&cli.StringFlag{Name: "output-dir", Value: "out", Usage: "directory for per-file JSON documents"},
					&cli.StringFlag{Name: "cache-dir", Usage: "TTL cache directory (optional)"},
					&cli.StringFlag{Name: "max-age", Value: "24h", Usage: "cache entry max age"},
					&cli.StringFlag{Name: "db", Usage: "sqlite document store path (optional)"},
					&cli.IntFlag{Name: "workers", Value: 4, Usage: "worker count"},
					&cli.BoolFlag{Name: "language", Usage: "detect document language"},
					&cli.BoolFlag{Name: "quiet", Usage: "errors only"},
				},
				Action: process.BatchAction,
			},
			{
				Name:  "backends",
				Usage: "report PDF extraction backend availability",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "config", Usage: "adapter config YAML"},
				},
				Action: process.BackendsAction,
			},
			{
				Name:  "list",
				Usage: "list stored normalization runs",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "db", Value: "content-adapters.db", Usage: "sqlite document store path"},
					&cli.StringFlag{Name: "type", Usage: "filter by content type"},
					&cli.IntFlag{Name: "limit", Value: 50, Usage: "max rows"},
				},
				Action: process.ListAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
