package dexdb

import "context"

// Approver handles operator confirmation before destructive operations.
//
// Implementations:
//   - ForcedApprover: Shows countdown and automatically approves
//   - InteractiveApprover: Prompts the operator to type a confirmation phrase
//   - DenyingApprover: Refuses, used when no terminal is attached and --force is absent
type Approver interface {
	// RequestApproval asks for confirmation before every table of target is dropped.
	RequestApproval(ctx context.Context, target string) (bool, error)
}
