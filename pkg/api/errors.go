package api

import "fmt"

// Exit statuses documented for scripting; each failure class gets its
// own so callers can branch on the code.
const (
	ExitBadGenericParams = 2
	ExitUnknownOperation = 3
	ExitBadObjectParams  = 4
	ExitMissingURL       = 6
	ExitMissingToken     = 7
	ExitTransport        = 10
)

// ExitError couples a failure message with the process exit status it
// maps to.
type ExitError struct {
	Code int
	Msg  string
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *ExitError) Unwrap() error { return e.Err }

// unknownOperation is the lookup-miss result for a named operation.
func unknownOperation(name string) error {
	return &ExitError{
		Code: ExitUnknownOperation,
		Msg:  fmt.Sprintf("unknown function name %q", name),
	}
}

// wrongParameter is the schema-validation failure for a named operation.
func wrongParameter(name, detail string) error {
	return &ExitError{
		Code: ExitBadObjectParams,
		Msg:  fmt.Sprintf("wrong parameter for %s: %s", name, detail),
	}
}

// transportError wraps a network or HTTP failure, carrying whatever
// response text is available.
func transportError(err error, response string) error {
	msg := "call failed"
	if response != "" {
		msg = "call failed: " + response
	}
	return &ExitError{Code: ExitTransport, Msg: msg, Err: err}
}
