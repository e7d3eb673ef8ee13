package domain

// Category classifies a known on-chain entity.
type Category string

const (
	CategoryExchange  Category = "exchange"
	CategoryBridge    Category = "bridge"
	CategoryMixer     Category = "mixer"
	CategoryProtocol  Category = "protocol"
	CategoryPumpFun   Category = "pumpfun"
	CategoryInfra     Category = "infra"
	CategoryExploiter Category = "exploiter"
)

// String returns the string representation of Category.
func (c Category) String() string {
	return string(c)
}

// KnownEntity is an immutable registry record for a well-known address.
type KnownEntity struct {
	Address  string   `json:"address"`
	Label    string   `json:"label"`
	Category Category `json:"category"`
}
