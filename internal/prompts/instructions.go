package prompts

const extractInstructions = `Extract all calendar events from this document image.
Look for dates, times, deadlines, assignments, exams, holidays, and any other scheduled events.

Be thorough and extract ALL events mentioned in the document, even if some information is missing.

Infer dates from context when they are not explicitly stated. Relative dates such as "next Monday"
must be converted to an actual calendar date. For relative references such as "Week 1" or "Day 3",
use the rest of the document (term start date, course calendar) to determine the actual date.`

const reviseInstructions = `You are an assistant helping a user modify the details of a calendar event.
The user describes how they want the event changed. Interpret the request and update only the
fields it affects. Reply conversationally and explain the changes you made.`

var instructions = map[Stage]string{
	StageExtract: extractInstructions,
	StageRevise:  reviseInstructions,
}

// Instructions returns the instructions for a stage.
// Returns ErrInvalidStage if the stage is not recognized.
func Instructions(stage Stage) (string, error) {
	text, ok := instructions[stage]
	if !ok {
		return "", ErrInvalidStage
	}
	return text, nil
}
