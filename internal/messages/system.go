package messages

// Language and version messages.
const (
	LanguageInvalidFmt        = "unsupported language %q (use en or zh)"
	LanguageLocaleUnavailable = "system locale is not set"

	VersionRequired   = "version is required"
	VersionInvalidFmt = "version %q must be in the form vX.Y.Z or X.Y.Z"
)
