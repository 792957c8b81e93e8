package prompts

const extractSpec = `Respond with a JSON array of event objects:

[
  {
    "title": "<name of the event>",
    "description": "<brief description>",
    "date": "YYYY-MM-DD",
    "startTime": "HH:MM",
    "endTime": "HH:MM",
    "location": "<location>",
    "type": "<exam|assignment|discussion|reading|class>"
  }
]

Field constraints:
- title: Required. The name of the event as written in the document.
- description: Optional. Empty string when the document gives no detail.
- date: Required. ISO calendar date in YYYY-MM-DD format.
- startTime, endTime: Optional. 24-hour HH:MM. Empty string when not stated.
- location: Optional. Empty string when not stated.
- type: Optional. One of exam, assignment, discussion, reading, or class when discernible.

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- Return an empty array when the image contains no events
- Emit one object per occurrence; do not merge distinct dates`

const reviseSpec = `Your response MUST be a valid JSON object with this structure:

{
  "message": "<your reply to the user>",
  "event": {
    "title": "<updated title>",
    "description": "<updated description>",
    "startDate": "<updated start, ISO 8601>",
    "endDate": "<updated end, ISO 8601>",
    "location": "<updated location>",
    "isAllDay": true
  }
}

Behavioral constraints:
- Only include fields in "event" that changed because of the user's request
- Use an empty "event" object when nothing changes
- Dates are YYYY-MM-DD for all-day events and YYYY-MM-DDTHH:MM:SS otherwise`

var specs = map[Stage]string{
	StageExtract: extractSpec,
	StageRevise:  reviseSpec,
}

// Spec returns the output specification for a stage.
// Returns ErrInvalidStage if the stage is not recognized.
func Spec(stage Stage) (string, error) {
	text, ok := specs[stage]
	if !ok {
		return "", ErrInvalidStage
	}
	return text, nil
}
