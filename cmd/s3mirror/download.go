package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/input-output-hk/catalyst-forge-libs/aws/s3mirror"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3mirror/mirrortypes"
)

var downloadCmd = &cobra.Command{
	Use:   "download <bucket> <destination>",
	Short: "Download a bucket into a local directory",
	Long: `Download every object in a bucket into a local directory tree.

Keys become relative paths under the destination directory. Files already
present locally are skipped unless --overwrite is set; skipped objects
count as successes. Directory markers (keys ending in "/") are never
downloaded. Interrupting the run keeps completed files and reports the
tally accumulated so far.`,
	Example: `  # Mirror a bucket
  s3mirror download my-bucket /data/mirror

  # Re-mirror, replacing local files
  s3mirror download my-bucket /data/mirror --overwrite

  # Mirror one prefix with higher parallelism
  s3mirror download my-bucket /data/mirror --prefix logs/ --concurrency 16`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDownload(cmd, args[0], args[1])
	},
}

type downloadReport struct {
	Bucket      string          `json:"bucket"`
	Destination string          `json:"destination"`
	Succeeded   int             `json:"succeeded"`
	Failed      int             `json:"failed"`
	Bytes       int64           `json:"bytes"`
	Size        string          `json:"size"`
	Canceled    bool            `json:"canceled,omitempty"`
	Failures    []failureReport `json:"failures,omitempty"`
}

type failureReport struct {
	Key     string `json:"key"`
	Message string `json:"message"`
}

func runDownload(cmd *cobra.Command, bucket, destination string) error {
	client, err := newClient(cmd)
	if err != nil {
		return err
	}

	prefix, _ := cmd.Flags().GetString("prefix")
	overwrite, _ := cmd.Flags().GetBool("overwrite")
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	quiet, _ := cmd.Flags().GetBool("quiet")

	opts := []mirrortypes.DownloadOption{
		s3mirror.WithPrefix(prefix),
		s3mirror.WithOverwrite(overwrite),
	}
	if cmd.Flags().Changed("concurrency") {
		opts = append(opts, s3mirror.WithMaxConcurrency(concurrency))
	}
	if !quiet {
		opts = append(opts, s3mirror.WithProgressFunc(printProgress(cmd)))
	}

	result, err := client.DownloadBucket(cmd.Context(), bucket, destination, opts...)
	if err != nil {
		return err
	}

	failures := make([]failureReport, 0, len(result.Failures))
	for _, f := range result.Failures {
		failures = append(failures, failureReport{Key: f.Key, Message: f.Message})
	}

	report := downloadReport{
		Bucket:      bucket,
		Destination: destination,
		Succeeded:   result.SuccessCount,
		Failed:      result.FailureCount,
		Bytes:       result.TotalBytesDownloaded,
		Size:        formatBytes(result.TotalBytesDownloaded),
		Canceled:    result.Canceled,
		Failures:    failures,
	}
	if err := printJSON(report); err != nil {
		return err
	}

	if !result.IsSuccess() {
		return fmt.Errorf("%d of %d objects failed",
			result.FailureCount, result.SuccessCount+result.FailureCount)
	}

	return nil
}

// printProgress writes one line per transfer event to stderr.
func printProgress(cmd *cobra.Command) mirrortypes.ProgressFunc {
	return func(p mirrortypes.Progress) {
		switch {
		case p.Error != "":
			cmd.PrintErrf("failed   %s: %s\n", p.Key, p.Error)
		case p.Completed:
			cmd.PrintErrf("finished %s (%s)\n", p.Key, formatBytes(p.BytesDownloaded))
		default:
			cmd.PrintErrf("started  %s (%s)\n", p.Key, formatBytes(p.TotalBytes))
		}
	}
}

func init() {
	downloadCmd.Flags().String("prefix", "", "Limit the download to keys under this prefix")
	downloadCmd.Flags().Bool("overwrite", false, "Replace local files that already exist")
	downloadCmd.Flags().Int("concurrency", 0, "Maximum parallel object transfers (default: client setting)")
	downloadCmd.Flags().BoolP("quiet", "q", false, "Suppress per-object progress output")
}
