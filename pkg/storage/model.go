package storage

import (
	"fmt"
	"stratus/pkg/common"
)

// Container is a named top-level grouping of objects (a bucket).
// It is an immutable value mapped from a single provider record;
// provider fields not otherwise modeled are preserved in Extra.
type Container struct {
	Name     string
	Provider common.Provider
	// Extra holds the remaining provider-specific fields verbatim
	Extra map[string]any
}

// Object is a named blob owned by exactly one container. The owning
// container is referenced by name; callers resolve it through the
// driver rather than holding an embedded reference.
type Object struct {
	Name          string
	ContainerName string
	Provider      common.Provider
	// Size is the byte count as reported by the provider
	Size int64
	// Hash is the provider-reported content digest (MD5 for GCS)
	Hash string
	// MetaData holds user-supplied key/value pairs
	MetaData map[string]string
	// Extra holds the remaining provider-specific fields verbatim
	Extra map[string]any
}

// ExtraString returns the named Extra field when it is a string,
// otherwise the empty string. Convenience for display code.
func (c Container) ExtraString(key string) string {
	s, _ := c.Extra[key].(string)
	return s
}

// ExtraString returns the named Extra field when it is a string,
// otherwise the empty string.
func (o Object) ExtraString(key string) string {
	s, _ := o.Extra[key].(string)
	return s
}

func FormatBytes(bytes int64) string {
	if bytes < 0 {
		return "N/A"
	}
	if bytes == 0 {
		return "0 B"
	}

	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	sizes := []string{"KB", "MB", "GB", "TB", "PB", "EB"}
	if exp >= len(sizes) {
		return fmt.Sprintf("%d B", bytes)
	}
	return fmt.Sprintf("%.1f %s", float64(bytes)/float64(div), sizes[exp])
}
