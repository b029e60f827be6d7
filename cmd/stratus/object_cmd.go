package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"stratus/internal/flags"
)

type objectFlags struct {
	provider    string
	bucket      string
	output      string
	overwrite   bool
	keepPartial bool
	force       bool
}

func newObjectCmd(app *appContainer) *cobra.Command {
	cmdFlags := objectFlags{}

	objectCmd := &cobra.Command{
		Use:   "object",
		Short: "Manage objects within storage buckets",
		Long:  `The object command allows you to list, describe, delete, and download objects stored in a bucket.`,
	}

	addTargetFlags := func(cmd *cobra.Command) {
		cmd.Flags().StringVarP(&cmdFlags.provider, flags.Provider, flags.ProviderShort, "", "The provider where the bucket resides (required)")
		cmd.MarkFlagRequired(flags.Provider)
		cmd.Flags().StringVarP(&cmdFlags.bucket, flags.Bucket, flags.BucketShort, "", "The bucket containing the object(s) (required)")
		cmd.MarkFlagRequired(flags.Bucket)
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List objects in a bucket",
		Long:  `Lists all objects in the specified bucket, following pagination until the listing is exhausted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			objects, err := app.StorageService.ListObjects(cmd.Context(), cmdFlags.provider, cmdFlags.bucket)
			if err != nil {
				return fmt.Errorf("error listing objects in bucket '%s': %w", cmdFlags.bucket, err)
			}

			if len(objects) > 0 {
				fmt.Println(app.StorageFormatter.FormatObjectList(objects))
			} else {
				fmt.Println("No objects found.")
			}
			return nil
		},
	}
	addTargetFlags(listCmd)

	describeCmd := &cobra.Command{
		Use:   "describe [object-name]",
		Short: "Describe a specific object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			objectName := args[0]

			obj, err := app.StorageService.DescribeObject(cmd.Context(), cmdFlags.provider, cmdFlags.bucket, objectName)
			if err != nil {
				return fmt.Errorf("error describing object '%s' in bucket '%s': %w", objectName, cmdFlags.bucket, err)
			}

			fmt.Println(app.StorageFormatter.FormatObjectDetails(obj))
			return nil
		},
	}
	addTargetFlags(describeCmd)

	deleteCmd := &cobra.Command{
		Use:   "delete [object-name]",
		Short: "Delete an object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			objectName := args[0]

			if !cmdFlags.force {
				confirmed, err := app.Prompter.Confirm(
					fmt.Sprintf("You are about to permanently delete the object '%s' from bucket '%s'.", objectName, cmdFlags.bucket),
					objectName,
				)
				if err != nil {
					return err
				}
				if !confirmed {
					fmt.Println("Deletion aborted.")
					return nil
				}
			}

			deleted, err := app.StorageService.DeleteObject(cmd.Context(), cmdFlags.provider, cmdFlags.bucket, objectName)
			if err != nil {
				return fmt.Errorf("error deleting object '%s' from bucket '%s': %w", objectName, cmdFlags.bucket, err)
			}

			if deleted {
				fmt.Printf("Object '%s' deleted successfully from bucket '%s'.\n", objectName, cmdFlags.bucket)
			} else {
				fmt.Printf("Provider did not confirm deletion of object '%s'.\n", objectName)
			}
			return nil
		},
	}
	addTargetFlags(deleteCmd)
	deleteCmd.Flags().BoolVarP(&cmdFlags.force, flags.Force, flags.ForceShort, false, "Skip the confirmation prompt")

	downloadCmd := &cobra.Command{
		Use:   "download [object-name]",
		Short: "Download an object to a local file",
		Long: `Downloads the raw content of an object to a local file. By default an
existing destination file is never overwritten and a partially written
file is removed when the transfer fails.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			objectName := args[0]

			destination := cmdFlags.output
			if destination == "" {
				destination = objectName
			}

			obj, err := app.StorageService.DownloadObject(
				cmd.Context(),
				cmdFlags.provider,
				cmdFlags.bucket,
				objectName,
				destination,
				cmdFlags.overwrite,
				!cmdFlags.keepPartial,
			)
			if err != nil {
				return fmt.Errorf("error downloading object '%s' from bucket '%s': %w", objectName, cmdFlags.bucket, err)
			}

			fmt.Printf("Downloaded '%s' (%d bytes) to %s.\n", obj.Name, obj.Size, destination)
			return nil
		},
	}
	addTargetFlags(downloadCmd)
	downloadCmd.Flags().StringVarP(&cmdFlags.output, flags.Output, flags.OutputShort, "", "Destination file path (defaults to the object name)")
	downloadCmd.Flags().BoolVar(&cmdFlags.overwrite, flags.Overwrite, false, "Overwrite the destination file if it exists")
	downloadCmd.Flags().BoolVar(&cmdFlags.keepPartial, flags.KeepPartial, false, "Keep a partially written file when the transfer fails")

	objectCmd.AddCommand(listCmd, describeCmd, deleteCmd, downloadCmd)
	return objectCmd
}
