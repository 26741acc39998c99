package normalize

import "fmt"

// MalformedResponseError is the only fatal normalization failure: the payload
// was not parseable JSON, or it carried no identity field. Every other
// missing or malformed field degrades to a default instead.
type MalformedResponseError struct {
	Reason string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed upstream response: %s", e.Reason)
}

func malformed(format string, args ...interface{}) error {
	return &MalformedResponseError{Reason: fmt.Sprintf(format, args...)}
}
