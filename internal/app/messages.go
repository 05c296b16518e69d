package app

import (
	"time"

	"crmdash/internal/client"
	"crmdash/internal/types"
)

type tickMsg time.Time

// viewportSettledMsg fires once resize events have been quiet for the
// debounce window. Only the latest seq is applied.
type viewportSettledMsg struct {
	seq   int
	width int
}

type feedUpdatedMsg struct{}

type recordsMsg struct {
	resource types.Resource
	records  []map[string]any
	err      error
}

type recordsDeletedMsg struct {
	resource types.Resource
	results  []client.DeleteResult
}
