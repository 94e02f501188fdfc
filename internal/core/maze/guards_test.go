package maze

import (
	"errors"
	"testing"
)

func TestCanSubmit(t *testing.T) {
	loc := Location{Row: 2, Col: 3}
	tests := []struct {
		name        string
		ctx         SubmitContext
		wantAllowed bool
		wantReason  string
		wantCause   error
	}{
		{
			name:        "fresh passage can be submitted",
			ctx:         SubmitContext{Location: loc, Kind: Passage},
			wantAllowed: true,
		},
		{
			name:        "fresh exit can be submitted",
			ctx:         SubmitContext{Location: loc, Kind: Exit},
			wantAllowed: true,
		},
		{
			name:        "duplicate submission rejected",
			ctx:         SubmitContext{Location: loc, Kind: Passage, AlreadySubmitted: true},
			wantAllowed: false,
			wantReason:  "location (2, 3) already submitted",
			wantCause:   ErrAlreadySubmitted,
		},
		{
			name:        "wall rejected",
			ctx:         SubmitContext{Location: loc, Kind: Wall},
			wantAllowed: false,
			wantReason:  "location (2, 3) is a wall",
			wantCause:   ErrWallSubmitted,
		},
		{
			name:        "duplicate check wins over wall check",
			ctx:         SubmitContext{Location: loc, Kind: Wall, AlreadySubmitted: true},
			wantAllowed: false,
			wantReason:  "location (2, 3) already submitted",
			wantCause:   ErrAlreadySubmitted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanSubmit(tt.ctx)

			if result.Allowed != tt.wantAllowed {
				t.Errorf("CanSubmit() Allowed = %v, want %v", result.Allowed, tt.wantAllowed)
			}
			if result.Reason != tt.wantReason {
				t.Errorf("CanSubmit() Reason = %q, want %q", result.Reason, tt.wantReason)
			}

			err := result.Error()
			if tt.wantAllowed {
				if err != nil {
					t.Errorf("CanSubmit().Error() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, ErrContractViolation) {
				t.Errorf("CanSubmit().Error() = %v, want contract violation", err)
			}
			if !errors.Is(err, tt.wantCause) {
				t.Errorf("CanSubmit().Error() = %v, want cause %v", err, tt.wantCause)
			}
			var cv *ContractViolationError
			if !errors.As(err, &cv) || cv.Location != loc {
				t.Errorf("expected ContractViolationError at %s, got %v", loc, err)
			}
		})
	}
}
