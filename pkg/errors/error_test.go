package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ErrorTestSuite struct {
	suite.Suite
}

func TestErrorSuite(t *testing.T) {
	suite.Run(t, new(ErrorTestSuite))
}

func (suite *ErrorTestSuite) TestNewError() {
	err := New(ErrCodeInvalidParameter, "invalid parameter")
	suite.NotNil(err)
	suite.Equal(ErrCodeInvalidParameter, err.Code)
	suite.Equal("invalid parameter", err.Message)
	suite.Nil(err.Cause)
}

func (suite *ErrorTestSuite) TestNewfError() {
	err := Newf(ErrCodeOrderNotFound, "order %d not found", 42)
	suite.NotNil(err)
	suite.Equal(ErrCodeOrderNotFound, err.Code)
	suite.Equal("order 42 not found", err.Message)
	suite.Nil(err.Cause)
}

func (suite *ErrorTestSuite) TestWrapError() {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeTransportFailed, "failed to place order", cause)
	suite.NotNil(err)
	suite.Equal(ErrCodeTransportFailed, err.Code)
	suite.Equal("failed to place order", err.Message)
	suite.Equal(cause, err.Cause)
}

func (suite *ErrorTestSuite) TestWrapfError() {
	cause := errors.New("underlying error")
	err := Wrapf(ErrCodeHistoryQueryFailed, cause, "query failed for symbol: %s", "AAPL")
	suite.NotNil(err)
	suite.Equal(ErrCodeHistoryQueryFailed, err.Code)
	suite.Equal("query failed for symbol: AAPL", err.Message)
	suite.Equal(cause, err.Cause)
}

func (suite *ErrorTestSuite) TestErrorString() {
	err := New(ErrCodeInvalidParameter, "invalid parameter")
	suite.Equal("[100] invalid parameter", err.Error())
}

func (suite *ErrorTestSuite) TestErrorStringWithCause() {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeConnectFailed, "connect failed", cause)
	suite.Equal("[200] connect failed: underlying error", err.Error())
}

func (suite *ErrorTestSuite) TestUnwrap() {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeConnectFailed, "connect failed", cause)
	suite.Equal(cause, err.Unwrap())
}

func (suite *ErrorTestSuite) TestUnwrapNil() {
	err := New(ErrCodeInvalidParameter, "invalid parameter")
	suite.Nil(err.Unwrap())
}

func (suite *ErrorTestSuite) TestGetCode() {
	err := New(ErrCodeInvalidQuantity, "quantity must be positive")
	suite.Equal(ErrCodeInvalidQuantity, GetCode(err))
}

func (suite *ErrorTestSuite) TestGetCodeFromWrapped() {
	cause := New(ErrCodeOrderNotFound, "order not found")
	err := Wrap(ErrCodeCallbackFailed, "callback failed", cause)
	// The outermost code wins.
	suite.Equal(ErrCodeCallbackFailed, GetCode(err))
}

func (suite *ErrorTestSuite) TestGetCodeFromPlainError() {
	err := errors.New("plain error")
	suite.Equal(ErrCodeUnknown, GetCode(err))
}

func (suite *ErrorTestSuite) TestHasCode() {
	err := New(ErrCodeInsufficientCash, "insufficient cash")
	suite.True(HasCode(err, ErrCodeInsufficientCash))
	suite.False(HasCode(err, ErrCodeOrderNotFound))
}

func (suite *ErrorTestSuite) TestIsAndAs() {
	cause := New(ErrCodeOrderNotFound, "order not found")
	err := Wrap(ErrCodeCallbackFailed, "callback failed", cause)

	suite.True(Is(err, cause))

	var target *Error
	suite.True(As(err, &target))
	suite.Equal(ErrCodeCallbackFailed, target.Code)
}
