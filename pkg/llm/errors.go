package llm

import "fmt"

// UnknownModelError reports a model key that is not in the catalog. This is a
// configuration bug, not a transient provider failure, so dispatch does not
// advance past it.
type UnknownModelError struct {
	Key string
}

func (e *UnknownModelError) Error() string {
	return fmt.Sprintf("unknown model key %q", e.Key)
}

// JSONParseError reports a model response that could not be parsed as a JSON
// object even after brace-span recovery. Dispatch treats it like any other
// model failure and advances the fallback chain.
type JSONParseError struct {
	ModelKey string
	Raw      string
	Err      error
}

func (e *JSONParseError) Error() string {
	return fmt.Sprintf("model %s returned unparseable JSON: %v", e.ModelKey, e.Err)
}

func (e *JSONParseError) Unwrap() error {
	return e.Err
}

// DispatchExhaustedError reports that the routed model and every fallback in
// its chain failed for a task.
type DispatchExhaustedError struct {
	Task       Task
	Candidates []string
	LastErr    error
}

func (e *DispatchExhaustedError) Error() string {
	return fmt.Sprintf("task %s: all %d candidate models failed, last error: %v",
		e.Task, len(e.Candidates), e.LastErr)
}

func (e *DispatchExhaustedError) Unwrap() error {
	return e.LastErr
}
