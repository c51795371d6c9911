package compiler

const (
	// Config stage
	ErrCodeConfigLoad     = "CONFIG_LOAD_ERROR"
	ErrCodeConfigValidate = "CONFIG_VALIDATE_ERROR"

	// Source stage
	ErrCodeSourceDiscover   = "SOURCE_DISCOVER_ERROR"
	ErrCodeSourceUnreadable = "SOURCE_UNREADABLE_MODEL"

	// Synthesis stage
	ErrCodeSynthesisCanceled = "SYNTHESIS_CANCELED"

	// Emit stage
	ErrCodeEmitRender = "EMIT_RENDER_ERROR"
	ErrCodeEmitWrite  = "EMIT_WRITE_ERROR"
)

// StableErrorCodes is the canonical registry of pipeline and CLI error codes.
var StableErrorCodes = []string{
	ErrCodeConfigLoad,
	ErrCodeConfigValidate,
	ErrCodeSourceDiscover,
	ErrCodeSourceUnreadable,
	ErrCodeSynthesisCanceled,
	ErrCodeEmitRender,
	ErrCodeEmitWrite,
}
