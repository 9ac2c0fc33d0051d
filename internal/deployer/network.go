package deployer

import (
	"fmt"

	"github.com/stellar/go/network"
)

// StandaloneNetworkPassphrase is the conventional passphrase of a local
// standalone network (quickstart image default).
const StandaloneNetworkPassphrase = "Standalone Network ; February 2017"

// Networks lists the deploy targets the stellar CLI is configured for.
var Networks = []string{"testnet", "mainnet", "standalone"}

// NetworkPassphrase maps a CLI network name onto its passphrase. The
// passphrase is informational here (the CLI signs transactions itself);
// it is logged so a deploy to the wrong network is visible in CI output.
func NetworkPassphrase(name string) (string, error) {
	switch name {
	case "testnet":
		return network.TestNetworkPassphrase, nil
	case "mainnet":
		return network.PublicNetworkPassphrase, nil
	case "standalone":
		return StandaloneNetworkPassphrase, nil
	default:
		return "", fmt.Errorf("unknown network %q (want testnet, mainnet or standalone)", name)
	}
}
