package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/pablasso/kanban/internal/api"
)

// PrerequisiteError represents a failed check with helpful remediation info.
type PrerequisiteError struct {
	Check   string
	Message string
	Help    string
	Err     error
}

func (e *PrerequisiteError) Error() string {
	return fmt.Sprintf("%s: %s\n\n%s", e.Check, e.Message, e.Help)
}

func (e *PrerequisiteError) Unwrap() error {
	return e.Err
}

// explain turns transport failures into a hint about where the API is
// expected. API responses (4xx/5xx) are returned unchanged.
func explain(err error, apiURL string) error {
	if err == nil {
		return nil
	}
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return err
	}
	return &PrerequisiteError{
		Check:   "Task API",
		Message: fmt.Sprintf("cannot reach %s", apiURL),
		Help:    "Start the task API, or point kanban at it with --api-url or KANBAN_API_URL.",
		Err:     err,
	}
}

// parseID parses a task ID argument.
func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid task id %q", arg)
	}
	return id, nil
}
