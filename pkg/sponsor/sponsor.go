package sponsor

import (
	"context"

	"gratuity-box/internal/model"
)

// Executor 代付执行服务：由第三方支付 Gas 并提交交易
type Executor interface {
	Execute(ctx context.Context, call model.CallDescription, sender string) (*model.ExecutionResult, error)
}

// Outcome 一次执行的最终结果，Result 与 Err 恰有一个非空
type Outcome struct {
	Result *model.ExecutionResult
	Err    error
}

// Go 在后台执行一次提交，结果通过只读 channel 交付一次
func Go(ctx context.Context, exec Executor, call model.CallDescription, sender string) <-chan Outcome {
	out := make(chan Outcome, 1)
	go func() {
		defer close(out)
		res, err := exec.Execute(ctx, call, sender)
		if err == nil && res == nil {
			err = &RelayError{Message: "empty execution result"}
		}
		if err != nil {
			out <- Outcome{Err: err}
			return
		}
		out <- Outcome{Result: res}
	}()
	return out
}
