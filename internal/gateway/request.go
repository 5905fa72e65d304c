package gateway

// RequestKind identifies the logical kind of an outbound request.
type RequestKind string

const (
	RequestKindCurrentTime      RequestKind = "current-time"
	RequestKindHistoricalData   RequestKind = "historical-data"
	RequestKindRealtimeData     RequestKind = "realtime-data"
	RequestKindCancelHistorical RequestKind = "cancel-historical"
	RequestKindCancelRealtime   RequestKind = "cancel-realtime"
	RequestKindPlaceOrder       RequestKind = "place-order"
	RequestKindCancelOrder      RequestKind = "cancel-order"
)

// Request is the closed set of outbound commands the session can transmit to
// the gateway. The set is sealed: only the request types in this package
// implement it, so the transmit loop can switch over the concrete types
// exhaustively instead of downcasting a polymorphic header.
//
// A request is created by a caller, assigned its id by the dispatcher, and is
// immutable after enqueue.
type Request interface {
	Kind() RequestKind
	RequestID() int64
	isRequest()
}

// RequestBase carries the dispatcher-assigned request id. Embed it in every
// request type.
type RequestBase struct {
	ID int64
}

func (b *RequestBase) RequestID() int64 { return b.ID }

func (b *RequestBase) SetRequestID(id int64) { b.ID = id }

func (b *RequestBase) isRequest() {}

// CurrentTimeRequest asks the gateway for its clock. Used as the keepalive
// heartbeat; the reply is consumed silently by the router.
type CurrentTimeRequest struct {
	RequestBase
}

func (*CurrentTimeRequest) Kind() RequestKind { return RequestKindCurrentTime }

// HistoricalDataRequest subscribes to a historical bar series.
type HistoricalDataRequest struct {
	RequestBase

	Symbol       string
	SecurityType string
	Exchange     string
	Currency     string
	// EndTime is the end of the requested range in the gateway's format.
	EndTime      string
	Duration     string
	BarSize      string
	WhatToShow   string
	UseRTH       bool
	KeepUpToDate bool
}

func (*HistoricalDataRequest) Kind() RequestKind { return RequestKindHistoricalData }

// RealtimeDataRequest opens a streaming market data subscription.
type RealtimeDataRequest struct {
	RequestBase

	Symbol       string
	SecurityType string
	Exchange     string
	Currency     string
}

func (*RealtimeDataRequest) Kind() RequestKind { return RequestKindRealtimeData }

// CancelHistoricalDataRequest cancels a pending historical data request.
// TargetRequestID is the id of the request being cancelled, not this one.
type CancelHistoricalDataRequest struct {
	RequestBase

	TargetRequestID int64
}

func (*CancelHistoricalDataRequest) Kind() RequestKind { return RequestKindCancelHistorical }

// CancelRealtimeDataRequest closes a streaming market data subscription.
type CancelRealtimeDataRequest struct {
	RequestBase

	TargetRequestID int64
}

func (*CancelRealtimeDataRequest) Kind() RequestKind { return RequestKindCancelRealtime }

// PlaceOrderRequest forwards an order to the venue.
type PlaceOrderRequest struct {
	RequestBase

	OrderID      int64
	Symbol       string
	SecurityType string
	Exchange     string
	Currency     string
	Side         string
	OrderType    string
	Quantity     float64
	Price        float64
	StopPrice    float64
}

func (*PlaceOrderRequest) Kind() RequestKind { return RequestKindPlaceOrder }

// CancelOrderRequest asks the venue to cancel a working order.
type CancelOrderRequest struct {
	RequestBase

	OrderID int64
}

func (*CancelOrderRequest) Kind() RequestKind { return RequestKindCancelOrder }
