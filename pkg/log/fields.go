package log

const (
	// Request
	FieldRequestID = "request_id"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status"
	FieldLatency   = "latency_ms"
	FieldClientIP  = "client_ip"

	// Actor
	FieldUserID = "user_id"

	// Service
	FieldService = "service"

	// Conversation
	FieldParticipantID = "participant_id"
	FieldSessionID     = "session_id"
	FieldMessageID     = "message_id"
	FieldClientID      = "client_id"

	// Sign-up flow
	FieldChallengeID = "challenge_id"
	FieldStorageKey  = "storage_key"
)
