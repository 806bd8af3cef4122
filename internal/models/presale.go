package models

// PresaleInfo is the UI shape of a presale contract's on-chain state.
// Times are unix seconds.
type PresaleInfo struct {
	Address          string `json:"address"`
	Owner            string `json:"owner"`
	SaleToken        string `json:"saleToken"`
	PaymentToken     string `json:"paymentToken"`
	Rate             BigInt `json:"rate"`
	SoftCap          BigInt `json:"softCap"`
	HardCap          BigInt `json:"hardCap"`
	MinContribution  BigInt `json:"minContribution"`
	MaxContribution  BigInt `json:"maxContribution"`
	StartTime        int64  `json:"startTime"`
	EndTime          int64  `json:"endTime"`
	TotalRaised      BigInt `json:"totalRaised"`
	WhitelistEnabled bool   `json:"whitelistEnabled"`
	ClaimEnabled     bool   `json:"claimEnabled"`
	RefundsEnabled   bool   `json:"refundsEnabled"`
}

// PresaleMetadata is the off-chain description of a presale
type PresaleMetadata struct {
	Address     string `json:"address"`
	Name        string `json:"name"`
	Description string `json:"description"`
	LogoURL     string `json:"logo_url"`
	Website     string `json:"website"`
	Twitter     string `json:"twitter"`
	Telegram    string `json:"telegram"`
	Approved    bool   `json:"approved"`
	Featured    bool   `json:"featured"`
}

// PresaleView joins a presale's chain state with its metadata
type PresaleView struct {
	Info     PresaleInfo      `json:"info"`
	Metadata *PresaleMetadata `json:"metadata,omitempty"`
}

// Participation is an account's standing in one presale
type Participation struct {
	Whitelisted  bool   `json:"whitelisted"`
	Contribution BigInt `json:"contribution"`
}
