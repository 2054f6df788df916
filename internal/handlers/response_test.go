package handlers

import (
	"strings"
	"testing"

	"github.com/priyankaj04/Gymlogs/internal/models"
)

func TestNewValidatorEnforcesEnums(t *testing.T) {
	v := newValidator()

	type sample struct {
		Part  models.BodyPart    `validate:"required,enum"`
		Level *models.Difficulty `validate:"omitempty,enum"`
		Label string             `validate:"omitempty,enum"`
	}
	beginner := models.DifficultyBeginner
	empty := models.Difficulty("")

	if err := v.Struct(sample{Part: models.BodyPartChest, Level: &beginner}); err != nil {
		t.Fatalf("expected valid values to pass, got %v", err)
	}
	if err := v.Struct(sample{Part: models.BodyPartChest}); err != nil {
		t.Fatalf("expected a nil pointer to be skipped, got %v", err)
	}

	tests := []struct {
		name  string
		input sample
		want  string
	}{
		{name: "unknown", input: sample{Part: "tail"}, want: `part has an unsupported value "tail"`},
		{name: "empty pointer", input: sample{Part: models.BodyPartBack, Level: &empty}, want: "level has an unsupported value"},
		{name: "no Valid method", input: sample{Part: models.BodyPartBack, Label: "x"}, want: "label has an unsupported value"},
	}
	for _, tt := range tests {
		err := v.Struct(tt.input)
		if err == nil {
			t.Fatalf("%s: expected a validation error", tt.name)
		}
		if got := describeValidation(err); !strings.Contains(got, tt.want) {
			t.Fatalf("%s: expected %q in %q", tt.name, tt.want, got)
		}
	}
}
