package batch

import (
	"errors"
	"strings"
	"testing"

	"github.com/FocuswithJustin/lyxnorm/internal/validation"
)

func TestDecodeRequests(t *testing.T) {
	input := `{"op":"ert","content":["\\texttt{Grüße}"],"open":true}

{"op":"length","spec":"-30.5col%"}
  {"op":"glue","spec":"1pt+2pt"}
{"op":"bp","spec":"1in"}
`
	requests, err := DecodeRequests(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeRequests() error = %v", err)
	}
	if len(requests) != 4 {
		t.Fatalf("DecodeRequests() returned %d requests, want 4", len(requests))
	}

	ert := requests[0]
	if ert.Op != OpERT || !ert.Open || ert.AsParagraph {
		t.Errorf("ert request = %+v", ert)
	}
	if len(ert.Content) != 1 || ert.Content[0] != `\texttt{Grüße}` {
		t.Errorf("ert content = %q", ert.Content)
	}
	if requests[1].Op != OpLength || requests[1].Spec != "-30.5col%" {
		t.Errorf("length request = %+v", requests[1])
	}
	if requests[3].Op != OpBP || requests[3].Spec != "1in" {
		t.Errorf("bp request = %+v", requests[3])
	}
}

func TestDecodeRequestsErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{"bad json", "{\"op\":\"length\"}\n{oops}\n", "line 2"},
		{"unknown field", `{"op":"length","spec":"1pt","unit":"pt"}`, "unknown field"},
		{"wrong type", `{"op":"ert","content":"x"}`, "line 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeRequests(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("DecodeRequests() expected error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("DecodeRequests() error = %v, want it to mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestDecodeRequestsTooLong(t *testing.T) {
	long := `{"op":"ert","content":["` + strings.Repeat("x", validation.MaxRequestSize) + `"]}`
	_, err := DecodeRequests(strings.NewReader(long))
	if !errors.Is(err, validation.ErrTooLarge) {
		t.Errorf("DecodeRequests(long) error = %v, want ErrTooLarge", err)
	}
}

func TestDecodeRequestsEmpty(t *testing.T) {
	requests, err := DecodeRequests(strings.NewReader("\n\n"))
	if err != nil || len(requests) != 0 {
		t.Errorf("DecodeRequests(blank) = %v, %v", requests, err)
	}
}
