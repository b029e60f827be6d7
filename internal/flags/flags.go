package flags

// Centralized definitions for CLI flags used across the application

const (
	// Provider flags are used when an operation targets a single, specific provider (e.g., describe, create, delete)
	Provider      = "provider"
	ProviderShort = "p"

	// Providers (plural) flags are used when an operation can target multiple providers (e.g., list)
	// Note: 'p' is reused for both singular and plural provider flags depending on the subcommand context
	Providers      = "providers"
	ProvidersShort = "p"

	// Bucket flags are used to specify the target bucket for object-level operations
	Bucket      = "bucket"
	BucketShort = "b"

	// Output flags name the destination path for downloads
	Output      = "output"
	OutputShort = "o"

	// Overwrite allows a download to clobber an existing destination file
	Overwrite = "overwrite"

	// KeepPartial disables removal of a partially written download after a failed transfer
	KeepPartial = "keep-partial"

	// Force flags are used to bypass interactive confirmation prompts for destructive operations
	Force      = "force"
	ForceShort = "f"

	// Debug enables debug-level logging
	Debug = "debug"
)
