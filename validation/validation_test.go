package validation

import (
	"errors"
	"strings"
	"testing"
)

type streamConfig struct {
	Stream  string `json:"stream" validate:"required"`
	Batch   int64  `json:"batch" validate:"gt=0"`
	Mode    string `json:"mode" validate:"oneof=range group"`
	Timeout string `json:"timeout,omitempty" validate:"omitempty,min=2"`
}

func TestValidateOK(t *testing.T) {
	cfg := streamConfig{Stream: "events", Batch: 64, Mode: "range"}
	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateCollectsAllFields(t *testing.T) {
	cfg := streamConfig{Batch: 0, Mode: "stripe"}
	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected error")
	}

	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if len(verr.Fields) != 3 {
		t.Fatalf("expected 3 field errors, got %v", verr.Fields)
	}

	msg := err.Error()
	for _, want := range []string{"stream is required", "batch must be greater than 0", "must be one of"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q missing %q", msg, want)
		}
	}
}

func TestValidateUsesJSONTagNames(t *testing.T) {
	type cfg struct {
		ReadTimeout string `json:"read_timeout" validate:"required"`
	}
	err := Validate(cfg{})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "read_timeout") {
		t.Errorf("error %q should name the json tag", err.Error())
	}
}

func TestToSnakeCase(t *testing.T) {
	tests := map[string]string{
		"ReadTimeout": "read_timeout",
		"Stream":      "stream",
		"batch":       "batch",
	}
	for in, want := range tests {
		if got := toSnakeCase(in); got != want {
			t.Errorf("toSnakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}
