package emit

import "fmt"

// EmissionError reports project data or configuration that cannot be
// rendered as Go source. Nothing is written when it occurs.
type EmissionError struct {
	// Path locates the offending value in the project, empty for
	// configuration and formatting problems.
	Path string
	Err  error
}

func (e *EmissionError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("emission failed: %v", e.Err)
	}

	return fmt.Sprintf("emission failed at %s: %v", e.Path, e.Err)
}

func (e *EmissionError) Unwrap() error {
	return e.Err
}
