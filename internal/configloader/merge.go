package configloader

import "github.com/yaklabco/mtlsort/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// It is used for CLI flags, where an unset flag arrives as the zero value:
//   - Strings and numbers: override wins when non-zero
//   - Booleans: override can only switch a flag on
//
// Config files are layered by decoding onto the current value instead, see
// loadConfigFile.
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Comments != "" {
		result.Comments = override.Comments
	}
	if override.NamePrefix != "" {
		result.NamePrefix = override.NamePrefix
	}
	if override.MaxNameLength != 0 {
		result.MaxNameLength = override.MaxNameLength
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Backups.Mode != "" {
		result.Backups.Mode = override.Backups.Mode
	}

	if override.DryRun {
		result.DryRun = true
	}
	if override.NoBackups {
		result.NoBackups = true
	}
	if override.Backups.Enabled {
		result.Backups.Enabled = true
	}

	return &result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
