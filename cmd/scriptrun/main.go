package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/bytedance/sonic"

	"github.com/formweave/backend/internal/config"
	"github.com/formweave/backend/internal/helpers"
	"github.com/formweave/backend/internal/logging"
	"github.com/formweave/backend/internal/sandbox"
)

func main() {
	scriptPath := flag.String("script", "", "Path to the JS Transform block body")
	inputPath := flag.String("input", "", "Path to a JSON file with the script input")
	contextPath := flag.String("context", "", "Path to a JSON file with the block context")
	timeoutMs := flag.Int("timeout", 0, "Timeout in milliseconds (0 = engine default)")
	console := flag.Bool("console", true, "Capture console output")
	flag.Parse()

	if *scriptPath == "" {
		log.Fatal("missing required -script flag")
	}

	cfg := config.LoadOrDefault()
	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
		OutputPaths: []string{"stderr"},
	})
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	code, err := os.ReadFile(*scriptPath)
	if err != nil {
		log.Fatalf("failed to read script: %v", err)
	}

	input, err := readJSON(*inputPath)
	if err != nil {
		log.Fatalf("failed to read input: %v", err)
	}
	blockCtx, err := readJSON(*contextPath)
	if err != nil {
		log.Fatalf("failed to read context: %v", err)
	}

	engine := sandbox.New(sandbox.Config{
		DefaultTimeout: time.Duration(cfg.Engine.DefaultTimeoutMs) * time.Millisecond,
		MaxTimeout:     time.Duration(cfg.Engine.MaxTimeoutMs) * time.Millisecond,
		MaxMemoryMB:    cfg.Engine.MaxMemoryMB,
		MaxCallStack:   cfg.Engine.MaxCallStack,
	}, helpers.New(), logger)
	executor := sandbox.NewExecutor(engine, cfg.Engine.PoolSize, logger)
	defer executor.Close()

	result := executor.Execute(context.Background(), sandbox.Request{
		Code:           string(code),
		Input:          input,
		Context:        blockCtx,
		TimeoutMs:      *timeoutMs,
		ConsoleEnabled: *console,
	})

	out, err := sonic.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("failed to encode result: %v", err)
	}
	fmt.Println(string(out))

	if !result.OK {
		os.Exit(1)
	}
}

// readJSON decodes an optional JSON file; an empty path yields nil.
func readJSON(path string) (interface{}, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var value interface{}
	if err := sonic.Unmarshal(data, &value); err != nil {
		return nil, err
	}
	return value, nil
}
