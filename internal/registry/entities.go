package registry

import "solana-wallet-forensics/internal/domain"

var defaultEntities = []domain.KnownEntity{
	// DEX / DeFi protocols
	{Address: "JUP6LkbZbjS1jKKwapdHNy74zcZ3tLUZoi5QNyVTaV4", Label: "Jupiter v6", Category: domain.CategoryProtocol},
	{Address: "whirLbMiicVdio4qvUfM5KAg6Ct8VwpYzGff3uctyCc", Label: "Orca Whirlpool", Category: domain.CategoryProtocol},
	{Address: "675kPX9MHTjS2zt1qfr1NYHuzeLXfQM9H24wFSUt1Mp8", Label: "Raydium AMM v4", Category: domain.CategoryProtocol},
	{Address: "9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin", Label: "Serum DEX v3", Category: domain.CategoryProtocol},
	{Address: "M2mx93ekt1fmXSVkTrUL9xVFHkmME8HTUi5Cyc5aF7K", Label: "Magic Eden v2", Category: domain.CategoryProtocol},
	{Address: "srmqPvymJeFKQ4zGQed1GFppgkRHL9kaELCbyksJtPX", Label: "OpenBook DEX", Category: domain.CategoryProtocol},
	{Address: "MarBmsSgKXdrN1egZf5sqe1TMai9K1rChYNDJgjq7aD", Label: "Marinade Finance", Category: domain.CategoryProtocol},
	{Address: "mSoLzYCxHdYgdzU16g5QSh3i5K3z3KZK7ytfqcJm7So", Label: "mSOL Token", Category: domain.CategoryProtocol},
	{Address: WrappedSOLMint, Label: "Wrapped SOL", Category: domain.CategoryProtocol},
	{Address: "DjVE6JNiYqPL2QXyCUUh8rNjHrbz9hXHNYt99MQ59qw1", Label: "Orca v1 Pool", Category: domain.CategoryProtocol},
	{Address: "EhhTKczWKXBC7cMBEaLkKd4NbVv8DgFB9JdnDYrjp7kZ", Label: "Jito Staking Pool", Category: domain.CategoryProtocol},
	{Address: "Jito4APyf642JPzcbhAbFNQTkRGCRDBrFKq6GsL6675", Label: "Jito Tip Router", Category: domain.CategoryProtocol},
	{Address: "DRiP2Pn2K6fuMLKQmt5rZWyHiUZ6WK3GChEySUpHSS4", Label: "Drip Protocol", Category: domain.CategoryProtocol},
	{Address: "SWiMDJYFUGj6cPrQ6QYYYWZtvXQdRChSVAygDZDsCHC", Label: "Swim Protocol", Category: domain.CategoryProtocol},
	{Address: "CAMMCzo5YL8w4VFF8KVHrK22GGUsp5VTaW7grrKgrWqK", Label: "Raydium CLMM", Category: domain.CategoryProtocol},
	{Address: "LBUZKhRxPF3XUpBCjp4YzTKgLccjZhTSDM9YuVaPwxo", Label: "Meteora DLMM", Category: domain.CategoryProtocol},

	// System programs
	{Address: SystemProgram, Label: "System Program", Category: domain.CategoryInfra},
	{Address: TokenProgram, Label: "SPL Token Program", Category: domain.CategoryInfra},
	{Address: "TokenzQdBNbLqP5VEhdkAS6EPFLC1PHnBqCXEpPxuEb", Label: "Token-2022 Program", Category: domain.CategoryInfra},
	{Address: "ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL", Label: "ATA Program", Category: domain.CategoryInfra},
	{Address: "ComputeBudget111111111111111111111111111111", Label: "Compute Budget", Category: domain.CategoryInfra},
	{Address: "metaqbxxUerdq28cj1RbAWkYQm3ybzjb6a8bt518x1s", Label: "Metaplex Meta", Category: domain.CategoryInfra},
	{Address: "BPFLoaderUpgradeab1e11111111111111111111111", Label: "BPF Loader", Category: domain.CategoryInfra},
	{Address: "SysvarRent111111111111111111111111111111111", Label: "Sysvar Rent", Category: domain.CategoryInfra},
	{Address: "SysvarC1ock11111111111111111111111111111111", Label: "Sysvar Clock", Category: domain.CategoryInfra},
	{Address: "MemoSq4gqABAXKb96qnH8TysNcWxMyWCqXgDLGmfcHr", Label: "Memo Program", Category: domain.CategoryInfra},

	// Pump.fun
	{Address: PumpFunProgram, Label: "Pump.fun", Category: domain.CategoryPumpFun},
	{Address: "TSLvdd1pWpHVjahSpsvCXUbgwsL3JAcvokwaKt1eokM", Label: "Pump.fun Fee Acct", Category: domain.CategoryPumpFun},

	// Bridges
	{Address: "wormDTUJ6AWPNvk59vGQbDvGJmqbDTdgWgAqcLBCgUb", Label: "Wormhole Bridge", Category: domain.CategoryBridge},
	{Address: "3u8hJUVTA4jH1wYAyUur7FFZVQ8H635K3tSHHF4ssjQ5", Label: "Allbridge Core", Category: domain.CategoryBridge},
	{Address: "EqtbVJNFJTqFPMvVB3UEpBBTfPn4YE3e6GxGMnqrqGnZ", Label: "deBridge", Category: domain.CategoryBridge},
	{Address: "rFqFJ9g7TGBD8Ed7TPDnvGKZ5pWLPDyxLcvcH2eRCtt", Label: "Mayan Finance", Category: domain.CategoryBridge},

	// Centralized exchanges
	{Address: "FpCMFDFGYotvufJ7dVFj6dFHJ6UNhGkwez4L5SNhFCeL", Label: "Binance Hot Wallet", Category: domain.CategoryExchange},
	{Address: "9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM", Label: "Binance Deposit", Category: domain.CategoryExchange},
	{Address: "H8sMJSCQxfKiFTCfDR3DUMLPwcRbM61LGFJ8N4dK3WjS", Label: "Kraken", Category: domain.CategoryExchange},
	{Address: "2ojv9BAiHUrvsm9gxDe7fJSzbNZSJcxZvf8dqmWGHG8S", Label: "OKX Deposit", Category: domain.CategoryExchange},
	{Address: "GJRs4FwHtemZ5ZE9x3FNvJ8TMwitKTh21yxdRPqn7npE", Label: "Coinbase", Category: domain.CategoryExchange},
	{Address: "AobVSwjFTkByBrFNnvhpZSHSYPdDMFkGRkEQP8dCArdZ", Label: "Bybit", Category: domain.CategoryExchange},
	{Address: "5tzFkiKscXHK5ZXCGbGuNgB7toZNgeTjJ5ecnpjHtHRv", Label: "Kraken 2", Category: domain.CategoryExchange},
	{Address: "GugU1tP7doLeTw9hQP51xRJyS8Da1fWxuiy2rVrnMD58", Label: "Gate.io", Category: domain.CategoryExchange},
	{Address: "HTCKSnsgcKnCQqXa7M5gUHiPHNSANnH4EWJA4xV22pxR", Label: "FTX (Defunct)", Category: domain.CategoryExchange},

	// Known exploiters
	{Address: "vines1vzrYbzLMRdu58ou5XTby4qAqVRLmqo36NKPTg", Label: "Wormhole Hack", Category: domain.CategoryExploiter},
	{Address: "EWjFENjQJeEKFMeA7EHK31gZXMdBGNBbJKBMWANKmxPG", Label: "Slope Hack", Category: domain.CategoryExploiter},
	{Address: "HQSRGVYxJCHFDwUooBMc16E1e3T6jcFf6YXsTKzjTmW", Label: "Cashio Exploiter", Category: domain.CategoryExploiter},
	{Address: "9vAhrXxNhU4TvL2pBdDHrPaMSYu4HsxjTpobU4Sv3NCk", Label: "Flagged Scammer", Category: domain.CategoryExploiter},
	{Address: "3fTR8GGL2mniGyHtd3Qy2KDVhZ9LHbW59rCc7A3RtMWo", Label: "Crema Exploiter", Category: domain.CategoryExploiter},
}
