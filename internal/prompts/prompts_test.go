package prompts_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/JaimeStill/syllascan/internal/prompts"
)

func TestCompose(t *testing.T) {
	for _, stage := range prompts.Stages() {
		t.Run(string(stage), func(t *testing.T) {
			got, err := prompts.Compose(stage)
			if err != nil {
				t.Fatalf("Compose() error = %v", err)
			}

			instructions, _ := prompts.Instructions(stage)
			spec, _ := prompts.Spec(stage)
			if !strings.HasPrefix(got, instructions) {
				t.Error("prompt should start with instructions")
			}
			if !strings.HasSuffix(got, spec) {
				t.Error("prompt should end with spec when no context is given")
			}
		})
	}
}

func TestComposeExtractNamesFields(t *testing.T) {
	got, err := prompts.Compose(prompts.StageExtract)
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	for _, field := range []string{"title", "description", "date", "startTime", "endTime", "location", "type"} {
		if !strings.Contains(got, `"`+field+`"`) {
			t.Errorf("extract prompt missing field %q", field)
		}
	}
}

func TestComposeWithContext(t *testing.T) {
	details := prompts.EventDetails{Title: "Quiz 2", StartDate: "2024-09-12", IsAllDay: true}

	got, err := prompts.Compose(prompts.StageRevise, details.Describe())
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	for _, want := range []string{"- Title: Quiz 2", "- Description: None", "- End Date: Same as start date", "- All Day Event: Yes"} {
		if !strings.Contains(got, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestComposeInvalidStage(t *testing.T) {
	_, err := prompts.Compose(prompts.Stage("classify"))
	if !errors.Is(err, prompts.ErrInvalidStage) {
		t.Errorf("err = %v, want ErrInvalidStage", err)
	}

	if _, err := prompts.ParseStage("revise"); err != nil {
		t.Errorf("ParseStage(revise) error = %v", err)
	}
}
