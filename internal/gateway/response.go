package gateway

import (
	"time"
)

// ResponseKind identifies the logical kind of an inbound message.
type ResponseKind string

const (
	ResponseKindCurrentTime   ResponseKind = "current-time"
	ResponseKindHistoricalBar ResponseKind = "historical-bar"
	ResponseKindRealtimeTick  ResponseKind = "realtime-tick"
	ResponseKindExecution     ResponseKind = "execution"
	ResponseKindOrderStatus   ResponseKind = "order-status"
	ResponseKindError         ResponseKind = "error"
)

// Response is the closed set of inbound messages a gateway client can decode.
// Each response is created by the client's message pump and consumed exactly
// once by the session's router.
type Response interface {
	Kind() ResponseKind
	RequestID() int64
	isResponse()
}

// ResponseBase carries the id of the request a response replies to. Zero for
// unsolicited messages (executions, broadcast errors).
type ResponseBase struct {
	ID int64
}

func (b *ResponseBase) RequestID() int64 { return b.ID }

func (b *ResponseBase) isResponse() {}

// CurrentTimeResponse is the reply to a CurrentTimeRequest.
type CurrentTimeResponse struct {
	ResponseBase

	Time time.Time
}

func (*CurrentTimeResponse) Kind() ResponseKind { return ResponseKindCurrentTime }

// HistoricalBarResponse is one bar of a historical data series. The series
// terminates with a response whose IsLast is true and carries no bar data.
type HistoricalBarResponse struct {
	ResponseBase

	BarTime time.Time
	Open    float64
	High    float64
	Low     float64
	Close   float64
	Volume  float64
	// WAP is the weighted average trade price reported for the bar.
	WAP    float64
	Count  int
	IsLast bool
}

func (*HistoricalBarResponse) Kind() ResponseKind { return ResponseKindHistoricalBar }

// RealtimeTickResponse is one streaming trade tick.
type RealtimeTickResponse struct {
	ResponseBase

	Symbol string
	Price  float64
	Size   float64
	Time   time.Time
}

func (*RealtimeTickResponse) Kind() ResponseKind { return ResponseKindRealtimeTick }

// ExecutionResponse reports a fill (possibly partial) for a working order.
// Executions are unsolicited: they are routed to the broadcast execution
// handler, not matched against a correlation entry.
type ExecutionResponse struct {
	ResponseBase

	OrderID      int64
	FillQuantity float64
	FillPrice    float64
	Time         time.Time
}

func (*ExecutionResponse) Kind() ResponseKind { return ResponseKindExecution }

// OrderStatusResponse reports an authoritative order state change from the
// venue (cancel confirmation, rejection).
type OrderStatusResponse struct {
	ResponseBase

	OrderID int64
	Status  string
	Reason  string
}

func (*OrderStatusResponse) Kind() ResponseKind { return ResponseKindOrderStatus }

// ErrorResponse is a gateway error. A single gateway error can reference an
// unrelated in-flight request, so errors are always delivered to the broadcast
// error handler and never matched to one correlation entry.
type ErrorResponse struct {
	ResponseBase

	Code    int
	Message string
	Time    time.Time
}

func (*ErrorResponse) Kind() ResponseKind { return ResponseKindError }
