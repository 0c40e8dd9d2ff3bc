package config

type Contracts struct {
	ChainID           int64  `json:"chain_id"`
	RPCURL            string `json:"rpc_url"`
	WLDToken          string `json:"wld_token"`
	ChallengeContract string `json:"challenge_contract"`
}

var networks = map[string]Contracts{
	"sepolia": {
		ChainID:           4801,
		RPCURL:            "https://worldchain-sepolia.g.alchemy.com/public",
		WLDToken:          "0x8FD73bCA4cA6EEE4A4a3797951F969a2088FD786",
		ChallengeContract: "0x43bd53c3e601d9760e71dDc5dFB76E786CE5d671",
	},
	"mainnet": {
		ChainID:           480,
		RPCURL:            "https://worldchain-mainnet.g.alchemy.com/public",
		WLDToken:          "0x2cfc85d8e48f8eab294be644d9e25c3030863003",
		ChallengeContract: "0xF29d3AEaf0cCD69F909FD999AebA1033C6859eAF",
	},
}

// Contracts returns the fixed contract table of the selected network.
// Anything but mainnet resolves to sepolia.
func (n NetworkConfigs) Contracts() Contracts {
	if n.Name == "mainnet" {
		return networks["mainnet"]
	}

	return networks["sepolia"]
}
