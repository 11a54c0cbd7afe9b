package main

import (
	"time"

	"github.com/spf13/cobra"
)

var bucketsCmd = &cobra.Command{
	Use:   "buckets",
	Short: "List buckets visible to the configured credentials",
	Example: `  # List all buckets
  s3mirror buckets`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runBuckets(cmd)
	},
}

type bucketReport struct {
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

func runBuckets(cmd *cobra.Command) error {
	client, err := newClient(cmd)
	if err != nil {
		return err
	}

	buckets, err := client.ListBuckets(cmd.Context())
	if err != nil {
		return err
	}

	reports := make([]bucketReport, 0, len(buckets))
	for _, b := range buckets {
		reports = append(reports, bucketReport{
			Name:      b.Name,
			CreatedAt: b.CreatedAt.Format(time.RFC3339),
		})
	}

	return printJSON(reports)
}
