package imagepoll

import (
	"fmt"

	"github.com/bft-labs/imagepoll/internal/domain"
	"github.com/bft-labs/imagepoll/pkg/log"
	"github.com/bft-labs/imagepoll/pkg/logbuffer"
)

// Version information for the imagepoll module.
const (
	// Version is the current version of the imagepoll module.
	Version = "1.0.0"

	// MinCompatibleVersion is the minimum version that is compatible with this version.
	MinCompatibleVersion = "1.0.0"
)

// ModuleVersion describes a sub-module's current and minimum compatible
// version.
type ModuleVersion struct {
	Version    string
	MinVersion string
}

// ModuleVersions returns the versions of every sub-module New checks
// compatibility against.
func ModuleVersions() map[string]ModuleVersion {
	return map[string]ModuleVersion{
		"domain":    {domain.Version, domain.MinCompatibleVersion},
		"log":       {log.Version, log.MinCompatibleVersion},
		"logbuffer": {logbuffer.Version, logbuffer.MinCompatibleVersion},
	}
}

// validateModuleVersions checks that all sub-module versions are compatible
// before New constructs anything.
func validateModuleVersions() error {
	for name, m := range ModuleVersions() {
		if !isVersionCompatible(m.Version, m.MinVersion) {
			return fmt.Errorf("module %s version %s is below minimum compatible version %s",
				name, m.Version, m.MinVersion)
		}
	}
	return nil
}

// isVersionCompatible checks if version >= minVersion using a simplified
// major.minor.patch comparison.
func isVersionCompatible(version, minVersion string) bool {
	var vMajor, vMinor, vPatch int
	var mMajor, mMinor, mPatch int

	_, _ = fmt.Sscanf(version, "%d.%d.%d", &vMajor, &vMinor, &vPatch)
	_, _ = fmt.Sscanf(minVersion, "%d.%d.%d", &mMajor, &mMinor, &mPatch)

	if vMajor != mMajor {
		return vMajor > mMajor
	}
	if vMinor != mMinor {
		return vMinor > mMinor
	}
	return vPatch >= mPatch
}
