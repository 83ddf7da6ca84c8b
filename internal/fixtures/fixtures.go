// Package fixtures embeds a small product transaction snapshot used when no
// remote source is configured.
package fixtures

import (
	_ "embed"
)

//go:embed product_transaction.json
var productTransactions []byte

// ProductTransactions returns a copy of the embedded snapshot
func ProductTransactions() []byte {
	out := make([]byte, len(productTransactions))
	copy(out, productTransactions)
	return out
}
