package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bryanwahyu/ugc-analyzer/internal/config"
	aiclient "github.com/bryanwahyu/ugc-analyzer/internal/infra/ai/openai"
	"github.com/bryanwahyu/ugc-analyzer/internal/infra/storage"
)

var errMissingAPIKey = errors.New("set the OPENAI_API_KEY environment variable")

// exitCode ends the process with the given status without printing anything.
type exitCode int

func (c exitCode) Error() string { return fmt.Sprintf("exit status %d", int(c)) }

type app struct {
	cfg    *config.Config
	log    *zap.Logger
	stdout io.Writer
	stderr io.Writer

	file      string
	logLevel  string
	logFormat string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	config.LoadEnv()
	cfg, err := config.Load(config.Path())
	if err != nil {
		fmt.Fprintf(stderr, "config load error: %v\n", err)
		return 1
	}

	a := &app{cfg: cfg, log: zap.NewNop(), stdout: stdout, stderr: stderr}
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	cmd, err := root.ExecuteContextC(ctx)
	_ = a.log.Sync()
	if err == nil {
		return 0
	}
	var code exitCode
	if errors.As(err, &code) {
		return int(code)
	}
	fmt.Fprintf(stderr, "%s failed: %s\n", failedAction(root, cmd), describe(err))
	return 1
}

// failedAction names what broke: the analysis for the root command, else the subcommand.
func failedAction(root, cmd *cobra.Command) string {
	if cmd == nil || cmd == root {
		return "analysis"
	}
	return cmd.Name()
}

// describe prefers the provider's own message over our wrapping.
func describe(err error) string {
	if msg, ok := aiclient.Message(err); ok {
		return msg
	}
	return err.Error()
}

func (a *app) minioOptions() storage.MinioOptions {
	m := a.cfg.Minio
	return storage.MinioOptions{
		Endpoint:  m.Endpoint,
		AccessKey: m.AccessKey,
		SecretKey: m.SecretKey,
		Region:    m.Region,
		UseSSL:    m.UseSSL,
	}
}
