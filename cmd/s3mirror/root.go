package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/input-output-hk/catalyst-forge-libs/aws/s3mirror"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3mirror/mirrortypes"
)

var cfg *cliConfig

var rootCmd = &cobra.Command{
	Use:   "s3mirror",
	Short: "Mirror S3 buckets into local directory trees",
	Long: `s3mirror downloads S3 buckets to local disk, preserving key structure
as directories. Files already present locally are skipped by default, so
repeated runs only fetch what is missing.
Configuration is loaded from a .env file or S3MIRROR_* environment variables.`,
	SilenceUsage: true,
}

func execute(ctx context.Context, config *cliConfig) error {
	cfg = config
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.AddCommand(bucketsCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(downloadCmd)

	rootCmd.PersistentFlags().String("region", "", "Override AWS region from config")
	rootCmd.PersistentFlags().String("endpoint", "", "Override S3 endpoint URL from config")
	rootCmd.PersistentFlags().Bool("path-style", false, "Use path-style addressing (most non-AWS endpoints need this)")
	rootCmd.PersistentFlags().Duration("timeout", 0, "Per-request HTTP timeout, e.g. 30s (0 means no timeout)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
}

// newClient builds the mirror client from the loaded config plus any
// persistent flag overrides.
func newClient(cmd *cobra.Command) (*s3mirror.Client, error) {
	region := cfg.Region
	if flag, _ := cmd.Flags().GetString("region"); flag != "" {
		region = flag
	}
	endpoint := cfg.Endpoint
	if flag, _ := cmd.Flags().GetString("endpoint"); flag != "" {
		endpoint = flag
	}
	pathStyle := cfg.ForcePathStyle
	if cmd.Flags().Changed("path-style") {
		pathStyle, _ = cmd.Flags().GetBool("path-style")
	}
	timeout := cfg.Timeout
	if cmd.Flags().Changed("timeout") {
		timeout, _ = cmd.Flags().GetDuration("timeout")
	}

	var opts []mirrortypes.Option
	if region != "" {
		opts = append(opts, s3mirror.WithRegion(region))
	}
	if endpoint != "" {
		opts = append(opts, s3mirror.WithEndpoint(endpoint))
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, s3mirror.WithStaticCredentials(cfg.AccessKey, cfg.SecretKey, cfg.SessionToken))
	}
	if pathStyle {
		opts = append(opts, s3mirror.WithForcePathStyle(true))
	}
	if timeout > 0 {
		opts = append(opts, s3mirror.WithTimeout(timeout))
	}
	if cfg.Concurrency > 0 {
		opts = append(opts, s3mirror.WithConcurrency(cfg.Concurrency))
	}
	opts = append(opts, s3mirror.WithLogger(newLogger(isVerbose(cmd))))

	return s3mirror.New(opts...)
}

// newLogger builds the CLI logger; verbose lowers the level to include
// per-operation detail.
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func isVerbose(cmd *cobra.Command) bool {
	verbose, _ := cmd.Flags().GetBool("verbose")
	return verbose
}
