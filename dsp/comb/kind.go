package comb

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-synth/dsp/core"
)

// Kind selects the filter recurrence.
type Kind int

const (
	// ForwardComb adds the delayed input: y = x + alpha*x[n-K].
	ForwardComb Kind = iota
	// BackwardComb adds the delayed output: y = x + alpha*y[n-K].
	BackwardComb
	// Echo outputs only the delayed, recirculated signal.
	Echo
)

func (k Kind) String() string {
	switch k {
	case ForwardComb:
		return "forward-comb"
	case BackwardComb:
		return "backward-comb"
	case Echo:
		return "echo"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

func (k Kind) valid() bool {
	return k >= ForwardComb && k <= Echo
}

// ParseKind maps a name to a Kind. It accepts the String forms and the short
// aliases "forward", "backward" and "feedback".
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "forward-comb", "forward", "feedforward", "comb":
		return ForwardComb, nil
	case "backward-comb", "backward", "feedback":
		return BackwardComb, nil
	case "echo":
		return Echo, nil
	}
	return 0, fmt.Errorf("%w: unknown filter kind %q", core.ErrInvalidArgument, name)
}
