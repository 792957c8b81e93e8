// Package prompts holds the fixed model prompts for each language model
// stage: instructions describing the task followed by an output spec.
package prompts

import "slices"

// Stage identifies a language model call that needs a prompt.
type Stage string

// Known stages.
const (
	StageExtract Stage = "extract"
	StageRevise  Stage = "revise"
)

var stages = []Stage{
	StageExtract,
	StageRevise,
}

// Stages returns the list of known stages.
func Stages() []Stage {
	return stages
}

// ParseStage validates a string as a known stage.
// Returns ErrInvalidStage if the value is not recognized.
func ParseStage(s string) (Stage, error) {
	v := Stage(s)
	if !slices.Contains(stages, v) {
		return "", ErrInvalidStage
	}
	return v, nil
}
