package domain

// Version information for the domain module.
const (
	// Version is the current version of the domain module.
	Version = "1.0.0"

	// MinCompatibleVersion is the minimum version that is compatible with this version.
	MinCompatibleVersion = "1.0.0"
)
