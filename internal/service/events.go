package service

import (
	"memelaunch/pkg/config"
)

// Event topics double as queue names on the MQ side.
const (
	TopicTrades    = config.QueueTradeEvents
	TopicLifecycle = config.QueueLifecycleEvents
)

// LifecycleEvent reports a meme status transition.
type LifecycleEvent struct {
	MemeIndex uint64 `json:"meme_index"`
	Status    string `json:"status"`
	At        int64  `json:"at"`
}

// TradeEvent reports a settled buy or sell.
type TradeEvent struct {
	MemeIndex   uint64 `json:"meme_index"`
	Side        string `json:"side"`
	Trader      string `json:"trader"`
	SolAmount   uint64 `json:"sol_amount"`
	TokenAmount uint64 `json:"token_amount"`
	TradingFee  uint64 `json:"trading_fee"`
	PriceAfter  string `json:"price_after"`
	At          int64  `json:"at"`
}

// ClaimEvent reports a genesis fee claim.
type ClaimEvent struct {
	MemeIndex uint64 `json:"meme_index"`
	Backer    string `json:"backer"`
	Amount    uint64 `json:"amount"`
	At        int64  `json:"at"`
}

// DepositMessage is what the chain watcher publishes on the deposit queue.
type DepositMessage struct {
	Address string `json:"address"`
	Amount  uint64 `json:"amount"`
}
