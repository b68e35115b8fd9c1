package domain

// ModelBackend selects the request/response shape used for model invocation.
type ModelBackend string

const (
	BackendClaude ModelBackend = "claude"
	BackendTitan  ModelBackend = "titan"
)

// KeyPolicy controls how output object keys are disambiguated.
type KeyPolicy string

const (
	// KeyPolicyUnique appends a random suffix so repeated deliveries never overwrite.
	KeyPolicyUnique KeyPolicy = "unique"
	// KeyPolicyFixed derives the key from the source name only; redelivery overwrites.
	KeyPolicyFixed KeyPolicy = "fixed"
)

// ParseKeyPolicy returns the policy named by s, or def when s is empty or unknown.
func ParseKeyPolicy(s string, def KeyPolicy) KeyPolicy {
	switch KeyPolicy(s) {
	case KeyPolicyUnique, KeyPolicyFixed:
		return KeyPolicy(s)
	default:
		return def
	}
}

// Outcome classifies a single model invocation attempt.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeRetryableFailure
	OutcomeTerminalFailure
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeRetryableFailure:
		return "retryable_failure"
	case OutcomeTerminalFailure:
		return "terminal_failure"
	default:
		return "unknown"
	}
}

// BlockTypeLine is the OCR block type holding one line of detected text.
const BlockTypeLine = "LINE"
