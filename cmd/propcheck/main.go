package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	propcheck "github.com/openregister/propcheck"
	"github.com/openregister/propcheck/httpapi"
	"github.com/openregister/propcheck/i18n"
	"github.com/openregister/propcheck/registry"
	"github.com/openregister/propcheck/upload"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "validate":
		validateCmd(os.Args[2:])
	case "serve":
		serveCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "propcheck CLI\n\nUsage:\n  propcheck validate -f schema.json [-all] [-lang en|ja]\n  propcheck serve [-addr :8080] [-redis redis://localhost:6379]")
}

func validateCmd(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	var file string
	var collect bool
	var lang string
	fs.StringVar(&file, "f", "", "schema file (json or yaml)")
	fs.BoolVar(&collect, "all", false, "report every issue instead of stopping at the first")
	fs.StringVar(&lang, "lang", "", "message language (en/ja)")
	_ = fs.Parse(args)
	if file == "" {
		fs.Usage()
		os.Exit(2)
	}
	if lang != "" {
		i18n.SetLanguage(lang)
	}

	res := upload.NewResolver()
	doc, err := res.Resolve(context.Background(), map[string]any{"file": file})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if props, ok := doc["properties"].(map[string]any); ok {
		doc = props
	}

	var opts []propcheck.Option
	if collect {
		opts = append(opts, propcheck.WithCollectAll())
	}
	v := propcheck.New(opts...)
	if err := v.ValidateProperties(doc, ""); err != nil {
		if iss, ok := propcheck.AsIssues(err); ok {
			for _, it := range iss {
				path := it.Path
				if path == "" {
					path = "/"
				}
				fmt.Fprintf(os.Stderr, "%s at %s: %s\n", it.Code, path, it.Message)
			}
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
	fmt.Println("ok")
}

func serveCmd(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	var addr, redisURL string
	fs.StringVar(&addr, "addr", envOr("ADDR", ":8080"), "listen address")
	fs.StringVar(&redisURL, "redis", os.Getenv("REDIS_URL"), "redis URL; empty keeps schemas in memory")
	_ = fs.Parse(args)

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	var store registry.Store
	if redisURL != "" {
		rs, err := registry.NewRedisStore(registry.RedisOptions{URL: redisURL})
		if err != nil {
			logger.Error("redis connection failed", "error", err.Error())
			os.Exit(1)
		}
		store = rs
	} else {
		store = registry.NewMemoryStore()
	}
	defer store.Close()

	validator := propcheck.New()
	svc := registry.NewService(store, validator, logger)
	srv := httpapi.New(svc, upload.NewResolver(), validator, logger)

	logger.Info("listening", "addr", addr)
	if err := srv.Start(addr); err != nil {
		logger.Error("server stopped", "error", err.Error())
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
