package main

import (
	"github.com/spf13/cobra"

	"github.com/input-output-hk/catalyst-forge-libs/aws/s3mirror"
)

var listCmd = &cobra.Command{
	Use:   "list <bucket>",
	Short: "List downloadable object keys in a bucket",
	Long: `List the keys of every downloadable object in a bucket, one per line,
in listing order. Directory markers (keys ending in "/") are excluded.`,
	Example: `  # List all keys
  s3mirror list my-bucket

  # List keys under one prefix
  s3mirror list my-bucket --prefix state/`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runList(cmd, args[0])
	},
}

func runList(cmd *cobra.Command, bucket string) error {
	client, err := newClient(cmd)
	if err != nil {
		return err
	}

	prefix, _ := cmd.Flags().GetString("prefix")

	keys, err := client.ListObjects(cmd.Context(), bucket,
		s3mirror.WithListPrefix(prefix),
	)
	if err != nil {
		return err
	}

	for _, key := range keys {
		cmd.Println(key)
	}

	return nil
}

func init() {
	listCmd.Flags().String("prefix", "", "Limit the listing to keys under this prefix")
}
