package mocks

//go:generate mockgen -destination=./mock_gateway.go -package=mocks github.com/CasinoHe/quanttrader-sub001/internal/gateway Client
//go:generate mockgen -destination=./mock_tradelog.go -package=mocks github.com/CasinoHe/quanttrader-sub001/internal/broker/history TradeLog
