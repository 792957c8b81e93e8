package prompts

import "errors"

// ErrInvalidStage indicates a stage with no registered prompt.
var ErrInvalidStage = errors.New("stage must be extract or revise")
