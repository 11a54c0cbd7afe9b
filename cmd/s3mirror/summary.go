package main

import (
	"github.com/spf13/cobra"

	"github.com/input-output-hk/catalyst-forge-libs/aws/s3mirror"
)

var summaryCmd = &cobra.Command{
	Use:   "summary <bucket>",
	Short: "Report object count and total size for a bucket",
	Long: `Report how many downloadable objects a bucket holds and their combined
size, without materializing the full key listing. Directory markers (keys
ending in "/") are excluded.`,
	Example: `  # Summarize a bucket
  s3mirror summary my-bucket

  # Summarize one prefix
  s3mirror summary my-bucket --prefix logs/`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSummary(cmd, args[0])
	},
}

type summaryReport struct {
	Bucket      string `json:"bucket"`
	ObjectCount int64  `json:"object_count"`
	TotalBytes  int64  `json:"total_bytes"`
	TotalSize   string `json:"total_size"`
}

func runSummary(cmd *cobra.Command, bucket string) error {
	client, err := newClient(cmd)
	if err != nil {
		return err
	}

	prefix, _ := cmd.Flags().GetString("prefix")

	summary, err := client.GetBucketSummary(cmd.Context(), bucket,
		s3mirror.WithListPrefix(prefix),
	)
	if err != nil {
		return err
	}

	return printJSON(summaryReport{
		Bucket:      bucket,
		ObjectCount: summary.ObjectCount,
		TotalBytes:  summary.TotalBytes,
		TotalSize:   formatBytes(summary.TotalBytes),
	})
}

func init() {
	summaryCmd.Flags().String("prefix", "", "Limit the summary to keys under this prefix")
}
