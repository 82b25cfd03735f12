package similarity

import "fmt"

// MatrixError reports a structurally invalid matrix supplied by a caller.
type MatrixError struct {
	Message string
}

func (e *MatrixError) Error() string {
	return fmt.Sprintf("invalid similarity matrix: %s", e.Message)
}
