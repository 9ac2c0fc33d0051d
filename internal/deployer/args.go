package deployer

import (
	"encoding/json"
	"fmt"
	"os"
)

// DefaultBurnBps is the fee-burn parameter used when the arguments file
// does not set one.
const DefaultBurnBps = 3000

// ConstructorArgs is the flat key-value file feeding the contract's
// constructor. Values flow unchanged into the deploy invocation.
type ConstructorArgs struct {
	// Fallback deployer identity when no CLI flag is given
	Admin string `json:"admin"`

	// Fee burn in basis points; nil means DefaultBurnBps
	BurnBps *int `json:"burn_bps"`

	// Optional pinned token SAC address; empty means resolve native XLM
	Token string `json:"token"`
}

// LoadConstructorArgs reads and parses the arguments file.
func LoadConstructorArgs(path string) (*ConstructorArgs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read constructor args %s: %w", path, err)
	}

	var args ConstructorArgs
	if err := json.Unmarshal(data, &args); err != nil {
		return nil, fmt.Errorf("failed to parse constructor args %s: %w", path, err)
	}
	return &args, nil
}

// BurnBpsOrDefault returns the configured burn_bps or the default.
func (a *ConstructorArgs) BurnBpsOrDefault() int {
	if a.BurnBps == nil {
		return DefaultBurnBps
	}
	return *a.BurnBps
}

// ResolveAdminIdentity picks the deploying identity. The CLI flag wins when
// provided; the args-file admin field is the fallback. The two original
// script revisions disagreed here, so the precedence is fixed explicitly.
func ResolveAdminIdentity(flagIdentity string, args *ConstructorArgs) (string, error) {
	if flagIdentity != "" {
		return flagIdentity, nil
	}
	if args.Admin != "" {
		return args.Admin, nil
	}
	return "", fmt.Errorf("no deployer identity: pass --deployer-acct or set \"admin\" in the args file")
}
