package errno

import "errors"

// Errno defines the error code logic
type Errno struct {
	Code    int
	Message string
}

func (e Errno) Error() string {
	return e.Message
}

// WithMessage returns a copy of e carrying a more specific message.
func (e Errno) WithMessage(msg string) Errno {
	e.Message = msg
	return e
}

// Decode tries to convert an error to Errno
func Decode(err error) (int, string) {
	if err == nil {
		return OK.Code, OK.Message
	}

	var ptr *Errno
	if errors.As(err, &ptr) && ptr != nil {
		return ptr.Code, ptr.Message
	}
	var val Errno
	if errors.As(err, &val) {
		return val.Code, val.Message
	}
	return InternalServerError.Code, err.Error()
}

// Common Errors
var (
	OK                  = Errno{Code: 0, Message: "Success"}
	InternalServerError = Errno{Code: 10001, Message: "Internal server error"}
	ErrBind             = Errno{Code: 10002, Message: "Error occurred while binding the request body to the struct"}
	ErrWalletHeader     = Errno{Code: 10003, Message: "Wallet address header missing or invalid"}
)

// Gratuity Errors (30000+)
var (
	ErrInvalidAmount      = Errno{Code: 30001, Message: "Enter a valid amount"}
	ErrNoFundsAvailable   = Errno{Code: 30002, Message: "No SUI coins found"}
	ErrInsufficientFunds  = Errno{Code: 30003, Message: "Insufficient balance"}
	ErrExecutionFailed    = Errno{Code: 30004, Message: "Sponsored execution failed"}
	ErrQueryFailed        = Errno{Code: 30005, Message: "Ledger query failed"}
	ErrNotConfigured      = Errno{Code: 30006, Message: "Package ID and vault ID are not configured"}
	ErrWalletNotConnected = Errno{Code: 30007, Message: "Connect a wallet first"}
	ErrSendInFlight       = Errno{Code: 30008, Message: "A gratuity from this wallet is already being sent"}
)
