package annotate

import (
	"time"

	"github.com/abhisek/tacit/internal/sentence"
)

// questionLoadedMsg carries a fetch result back to the update loop. seq is
// the number BeginLoad issued for it.
type questionLoadedMsg struct {
	seq      uint64
	question *sentence.Question
	err      error
}

// explainPollMsg checks whether a requested explanation is ready.
type explainPollMsg time.Time
