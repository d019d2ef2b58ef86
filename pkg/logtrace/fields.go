package logtrace

// Fields is a type alias for structured log fields
type Fields map[string]interface{}

// WithFields returns a copy of base with extra fields merged in.
func WithFields(base Fields, extra Fields) Fields {
	fields := Fields{}
	for key, value := range base {
		fields[key] = value
	}
	for key, value := range extra {
		fields[key] = value
	}
	return fields
}

const (
	FieldCorrelationID  = "correlation_id"
	FieldMethod         = "method"
	FieldModule         = "module"
	FieldError          = "error"
	FieldStatus         = "status"
	FieldDocumentID     = "document_id"
	FieldContentID      = "content_id"
	FieldProofHash      = "proof_hash"
	FieldProofType      = "proof_type"
	FieldMerkleRoot     = "merkle_root"
	FieldChallengeCount = "challenge_count"
	FieldBlockCount     = "block_count"
	FieldFileSize       = "file_size"
	FieldStackTrace     = "stack_trace"
)
