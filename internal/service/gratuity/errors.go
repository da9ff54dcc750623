package gratuity

import (
	"errors"
	"fmt"

	"gratuity-box/pkg/errno"
)

var (
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrNoFundsAvailable   = errors.New("no SUI coins found")
	ErrNotConfigured      = errors.New("package ID and vault ID are not configured")
	ErrWalletNotConnected = errors.New("wallet not connected")
	ErrSendInFlight       = errors.New("a gratuity from this wallet is already in flight")
)

// InsufficientFundsError 最大的 Coin 也不够支付；金额均为 SUI 显示单位
type InsufficientFundsError struct {
	Requested string
	Available string

	RequestedMist uint64
	AvailableMist uint64
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("Insufficient balance. Need %s SUI, largest coin has %s SUI", e.Requested, e.Available)
}

// ExecutionFailedError 代付执行失败，Message 原样透传执行服务的错误
type ExecutionFailedError struct {
	Message string
}

func (e *ExecutionFailedError) Error() string {
	return "Error: " + e.Message
}

// QueryFailedError 链上查询失败
type QueryFailedError struct {
	Query string
	Err   error
}

func (e *QueryFailedError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Query, e.Err)
}

func (e *QueryFailedError) Unwrap() error {
	return e.Err
}

// ToErrno maps a gratuity error onto the API error code table.
func ToErrno(err error) error {
	var (
		insufficient *InsufficientFundsError
		execFailed   *ExecutionFailedError
		queryFailed  *QueryFailedError
	)

	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrInvalidAmount):
		return errno.ErrInvalidAmount
	case errors.Is(err, ErrNoFundsAvailable):
		return errno.ErrNoFundsAvailable
	case errors.Is(err, ErrNotConfigured):
		return errno.ErrNotConfigured
	case errors.Is(err, ErrWalletNotConnected):
		return errno.ErrWalletNotConnected
	case errors.Is(err, ErrSendInFlight):
		return errno.ErrSendInFlight
	case errors.As(err, &insufficient):
		return errno.ErrInsufficientFunds.WithMessage(insufficient.Error())
	case errors.As(err, &execFailed):
		return errno.ErrExecutionFailed.WithMessage(execFailed.Error())
	case errors.As(err, &queryFailed):
		return errno.ErrQueryFailed.WithMessage(queryFailed.Error())
	default:
		return err
	}
}

// FailureReason 用于监控标签
func FailureReason(err error) string {
	var (
		insufficient *InsufficientFundsError
		execFailed   *ExecutionFailedError
		queryFailed  *QueryFailedError
	)

	switch {
	case errors.Is(err, ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, ErrNoFundsAvailable):
		return "no_funds"
	case errors.Is(err, ErrNotConfigured):
		return "not_configured"
	case errors.Is(err, ErrWalletNotConnected):
		return "no_wallet"
	case errors.Is(err, ErrSendInFlight):
		return "in_flight"
	case errors.As(err, &insufficient):
		return "insufficient_funds"
	case errors.As(err, &execFailed):
		return "execution_failed"
	case errors.As(err, &queryFailed):
		return "query_failed"
	default:
		return "internal"
	}
}
