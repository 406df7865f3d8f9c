package token

// Entry configures one registry token.
type Entry struct {
	Symbol   string
	Address  string
	Decimals uint8
}

// DefaultEntries lists the Ethereum mainnet tokens known out of the box.
var DefaultEntries = []Entry{
	// stablecoins
	{Symbol: "USDT", Address: "0xdac17f958d2ee523a2206206994597c13d831ec7", Decimals: 6},
	{Symbol: "USDC", Address: "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48", Decimals: 6},
	{Symbol: "DAI", Address: "0x6b175474e89094c44da98b954eedeac495271d0f", Decimals: 18},
	{Symbol: "BUSD", Address: "0x4fabb145d64652a948d72533023f6e7a623c7c53", Decimals: 18},
	{Symbol: "FRAX", Address: "0x853d955acef822db058eb8505911ed77f175b99e", Decimals: 18},

	{Symbol: "WETH", Address: "0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2", Decimals: 18},
	{Symbol: "WBTC", Address: "0x2260fac5e5542a773aa44fbcfedf7c193bc2c599", Decimals: 8},

	// defi
	{Symbol: "UNI", Address: "0x1f9840a85d5af5bf1d1762f925bdaddc4201f984", Decimals: 18},
	{Symbol: "AAVE", Address: "0x7fc66500c84a76ad7e9c93437bfc5ac33e2ddae9", Decimals: 18},
	{Symbol: "LINK", Address: "0x514910771af9ca656af840dff83e8264ecf986ca", Decimals: 18},
	{Symbol: "COMP", Address: "0xc00e94cb662c3520282e6f5717214004a7f26888", Decimals: 18},
	{Symbol: "MKR", Address: "0x9f8f72aa9304c8b593d555f12ef6589cc3a579a2", Decimals: 18},
	{Symbol: "SNX", Address: "0xc011a73ee8576fb46f5e1c5751ca3b9fe0af2a6f", Decimals: 18},
	{Symbol: "CRV", Address: "0xd533a949740bb3306d119cc777fa900ba034cd52", Decimals: 18},
	{Symbol: "SUSHI", Address: "0x6b3595068778dd592e39a122f4f5a5cf09c90fe2", Decimals: 18},
	{Symbol: "LDO", Address: "0x5a98fcbea516cf06857215779fd812ca3bef1b32", Decimals: 18},

	// layer 2
	{Symbol: "MATIC", Address: "0x7d1afa7b718fb893db30a3abc0cfc608aacfebb0", Decimals: 18},
	{Symbol: "ARB", Address: "0xb50721bcf8d664c30412cfbc6cf7a15145234ad1", Decimals: 18},
	{Symbol: "OP", Address: "0x4200000000000000000000000000000000000042", Decimals: 18},

	// meme
	{Symbol: "SHIB", Address: "0x95ad61b0a150d79219dcf64e1e6cc01f0b64c4ce", Decimals: 18},
	{Symbol: "PEPE", Address: "0x6982508145454ce325ddbe47a25d4ec3d2311933", Decimals: 18},
	{Symbol: "FLOKI", Address: "0xcf0c122c6b73ff809c693db761e7baebe62b6a2e", Decimals: 9},
	{Symbol: "APE", Address: "0x4d224452801aced8b2f0aebe155379bb5d594381", Decimals: 18},

	{Symbol: "GRT", Address: "0xc944e90c64b2c07662a292be6244bdf05cda44a7", Decimals: 18},
	{Symbol: "FTM", Address: "0x4e15361fd6b4bb609fa63c81a2be19d873717870", Decimals: 18},

	// gaming
	{Symbol: "SAND", Address: "0x3845badade8e6dff049820680d1f14bd3903a5d0", Decimals: 18},
	{Symbol: "MANA", Address: "0x0f5d2fb29fb7d3cfee444a200298f468908cc942", Decimals: 18},
	{Symbol: "AXS", Address: "0xbb0e17ef65f82ab018d8edd776e8dd940327b28b", Decimals: 18},
	{Symbol: "ENJ", Address: "0xf629cbd94d3791c9250152bd8dfbdf380e2a3b9c", Decimals: 18},

	{Symbol: "BAT", Address: "0x0d8775f648430679a709e98d2b0cb6250d2887ef", Decimals: 18},
	{Symbol: "ZRX", Address: "0xe41d2489571d322189246dafa5ebde1f4699f498", Decimals: 18},
}
