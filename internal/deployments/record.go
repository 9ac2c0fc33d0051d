package deployments

import "fmt"

// Record captures one contract deployment on one network.
type Record struct {
	// Identification
	ContractID string `json:"contract_id"`
	WasmHash   string `json:"wasm_hash"`

	// Constructor arguments as deployed: the resolved admin public key,
	// the fee burn in basis points, and the token SAC address.
	Admin   string `json:"admin"`
	BurnBps int    `json:"burn_bps"`
	Token   string `json:"token"`

	// Target
	Network string `json:"network"`
}

// Key returns the ledger key for a contract deployed to a network.
// One contract may be live on several networks at once; each gets its
// own entry.
func Key(contract, network string) string {
	return fmt.Sprintf("%s-%s", contract, network)
}
