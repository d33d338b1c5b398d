package confirm_test

import (
	"context"
	"strings"
	"testing"

	confirm "github.com/aindrila22/calendar/internal/domain/confirm"
)

func TestAnswered(t *testing.T) {
	ctx := context.Background()

	ok, err := confirm.Answered(true).Confirm(ctx, "sure?")
	if err != nil || !ok {
		t.Errorf("Answered(true) = %v, %v, want true, nil", ok, err)
	}

	ok, err = confirm.Answered(false).Confirm(ctx, "sure?")
	if err != nil || ok {
		t.Errorf("Answered(false) = %v, %v, want false, nil", ok, err)
	}
}

func TestPrompt(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"plain yes", "y\n", true},
		{"spelled out", "yes\n", true},
		{"uppercase", "YES\n", true},
		{"padded", "  y  \n", true},
		{"plain no", "n\n", false},
		{"empty line defaults to no", "\n", false},
		{"garbage defaults to no", "maybe\n", false},
		{"closed input defaults to no", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out strings.Builder
			c := confirm.Prompt(strings.NewReader(tt.input), &out)

			got, err := c.Confirm(context.Background(), `Are you sure you want to delete the event "Standup"?`)
			if err != nil {
				t.Fatalf("confirm failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("answer = %v, want %v", got, tt.want)
			}
			if !strings.Contains(out.String(), `delete the event "Standup"?`) {
				t.Errorf("prompt not written: %q", out.String())
			}
		})
	}
}

func TestPromptCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out strings.Builder
	c := confirm.Prompt(strings.NewReader("y\n"), &out)
	if _, err := c.Confirm(ctx, "sure?"); err == nil {
		t.Error("cancelled context should fail the prompt")
	}
}
