package messages

// Priority config messages.
const (
	PriorityEmpty          = "priority config has no entries"
	PriorityEntryInvalid   = "priority entry needs both cli and provider"
	PriorityContentEmpty   = "priority config content is empty"
	PriorityWriteFailedFmt = "failed to write %s: %w"
	PriorityParseFailedFmt = "failed to parse %s: %w"

	// PriorityRegistryMissingFmt is a warning; only auto is offered afterwards.
	PriorityRegistryMissingFmt    = "Providers file not found at %s; only auto is available"
	PriorityRegistryReadFailedFmt = "Failed to read providers.json: %v; only auto is available"
	PriorityRegistryInvalid       = "Invalid providers.json format; only auto is available"

	PriorityDisplayCodex  = "Codex (codex)"
	PriorityDisplayGemini = "Gemini (gemini)"
	PriorityDisplayClaude = "Claude (claude)"
	PriorityDisplayAuto   = "auto (let aiw route)"
)
