package messages

// Bundle messages.
const (
	BundleNotFound           = "bundle language tree not found"
	BundleLanguageMissingFmt = "language %s is not available in bundle %s: %w"
	BundleDirInvalidFmt      = "bundle directory %s is not usable: %w"
	BundleDirNotDirFmt       = "bundle path %s is not a directory"
	BundleManifestReadFmt    = "failed to read manifest in bundle %s: %w"
	BundleManifestInvalidFmt = "invalid manifest in bundle %s: %w"
	BundleManifestPathFmt    = "manifest in bundle %s lists invalid path %q"
)
