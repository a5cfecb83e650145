package models

// TotalStats is the aggregate snapshot served by GET /stats.
type TotalStats struct {
	TotalUsers  int64 `json:"totalUsers"`
	TotalMined  int64 `json:"totalMined"`
	DailyUsers  int64 `json:"dailyUsers"`
	OnlineUsers int64 `json:"onlineUsers"`
}

// WalletEntry is one row of the all-wallets listing.
type WalletEntry struct {
	TelegramUserID string `bson:"telegramUserId" json:"telegramUserId"`
	Username       string `bson:"username" json:"username"`
	WalletAddress  string `bson:"walletAddress,omitempty" json:"walletAddress,omitempty"`
}
