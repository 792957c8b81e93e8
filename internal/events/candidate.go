package events

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Field is an optional string decoded from untrusted JSON. Strings, numbers
// and booleans are accepted as text; null, objects and arrays leave it unset.
type Field struct {
	Value string
	Set   bool
}

// UnmarshalJSON accepts any JSON value without failing.
func (f *Field) UnmarshalJSON(data []byte) error {
	*f = Field{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		*f = Field{Value: strings.TrimSpace(s), Set: true}
	case 't', 'f':
		*f = Field{Value: string(data), Set: true}
	case 'n', '{', '[':
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err == nil {
			*f = Field{Value: n.String(), Set: true}
		}
	}
	return nil
}

// MarshalJSON renders an unset field as null.
func (f Field) MarshalJSON() ([]byte, error) {
	if !f.Set {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// String returns the field value, empty when unset.
func (f Field) String() string {
	return f.Value
}

// Bool reports whether the field holds a truthy value such as "true", "yes" or "1".
func (f Field) Bool() bool {
	if !f.Set {
		return false
	}
	v := strings.ToLower(f.Value)
	if v == "yes" || v == "y" {
		return true
	}
	b, err := strconv.ParseBool(v)
	return err == nil && b
}

// S builds a set Field, convenient for constructing candidates in code.
func S(v string) Field {
	return Field{Value: v, Set: true}
}

// Candidate is an event as returned by the extraction model. Nothing about
// it is trusted: every field is optional and may be malformed.
type Candidate struct {
	Title       Field `json:"title"`
	Description Field `json:"description"`
	Date        Field `json:"date"`
	StartDate   Field `json:"startDate"`
	StartTime   Field `json:"startTime"`
	EndTime     Field `json:"endTime"`
	Location    Field `json:"location"`
	Type        Field `json:"type"`
	IsAllDay    Field `json:"isAllDay"`
	Recurrence  Field `json:"recurrence"`
}

type candidateFields Candidate

// UnmarshalJSON decodes an object into the candidate. Values that are not
// objects decode to an empty candidate instead of failing the whole list.
func (c *Candidate) UnmarshalJSON(data []byte) error {
	*c = Candidate{}
	var fields candidateFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil
	}
	*c = Candidate(fields)
	return nil
}

// Empty reports whether the candidate carries no title, description or date.
func (c Candidate) Empty() bool {
	return c.Title.Value == "" &&
		c.Description.Value == "" &&
		c.Date.Value == "" &&
		c.StartDate.Value == ""
}
