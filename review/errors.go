package review

import "fmt"

// FileReadError indicates an input file could not be read. The file is
// skipped and the run continues.
type FileReadError struct {
	Path string
	Err  error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("failed to read file %s: %v", e.Path, e.Err)
}

func (e *FileReadError) Unwrap() error { return e.Err }

// ModelInvocationError indicates the inference call failed. The file is
// skipped and the run continues.
type ModelInvocationError struct {
	Path string
	Err  error
}

func (e *ModelInvocationError) Error() string {
	return fmt.Sprintf("model invocation failed for %s: %v", e.Path, e.Err)
}

func (e *ModelInvocationError) Unwrap() error { return e.Err }

// MalformedResponseError indicates the normalizer could not locate a
// structured payload in the model output. Raw carries the full response
// text for diagnostics; the caller decides whether to retry, skip, or
// emit a placeholder record.
type MalformedResponseError struct {
	Raw string
	Err error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("no valid JSON payload in model response: %v", e.Err)
	}
	return "no valid JSON payload in model response"
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// CacheIOError indicates a cache read or write failed. Non-fatal: reads
// are treated as misses, writes are logged and dropped.
type CacheIOError struct {
	Fingerprint string
	Op          string
	Err         error
}

func (e *CacheIOError) Error() string {
	return fmt.Sprintf("cache %s failed for fingerprint %s: %v", e.Op, e.Fingerprint, e.Err)
}

func (e *CacheIOError) Unwrap() error { return e.Err }
