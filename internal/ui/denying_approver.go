package ui

import (
	"context"
	"fmt"
	"io"

	"github.com/vvka-141/dexdb/pkg/dexdb"
)

// DenyingApprover refuses every request. It is used when no terminal is
// attached and --force was not given.
type DenyingApprover struct {
	output io.Writer
}

// NewDenyingApprover creates a new DenyingApprover writing its reason to stderr.
func NewDenyingApprover() dexdb.Approver {
	out, _ := stderr()
	return &DenyingApprover{output: out}
}

func (a *DenyingApprover) RequestApproval(_ context.Context, target string) (bool, error) {
	fmt.Fprintf(a.output, "Refusing to reload '%s' without a terminal; pass --force to proceed.\n", target)
	return false, nil
}

var _ dexdb.Approver = (*DenyingApprover)(nil)
