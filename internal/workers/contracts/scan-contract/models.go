// internal/workers/contracts/scan-contract/models.go
package scancontract

import "creator-pricing-workers/internal/scoring/contracts"

type Input struct {
	ContractText string                 `json:"contractText"`
	DealContext  *contracts.DealContext `json:"dealContext,omitempty"`
	CreatorName  string                 `json:"creatorName,omitempty"`
}

// Output flattens the scan result so gateways can branch on needsChanges.
type Output struct {
	contracts.Result
	RedFlagCount int  `json:"redFlagCount"`
	NeedsChanges bool `json:"needsChanges"`
}
