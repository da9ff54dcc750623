package gratuity

import (
	"gratuity-box/internal/model"
)

// SelectFundObject 选择用于拆分的 Coin:
// 1. 按顺序找到第一个余额 >= required 的 Coin 直接返回 (first-fit)
// 2. 否则返回余额最大的 Coin (并列时取最早出现的)
// objects 为空时 ok 为 false
func SelectFundObject(objects []model.FundObject, required uint64) (selected model.FundObject, ok bool) {
	if len(objects) == 0 {
		return model.FundObject{}, false
	}

	candidate := objects[0]
	for _, obj := range objects {
		if obj.Balance >= required {
			return obj, true
		}
		if obj.Balance > candidate.Balance {
			candidate = obj
		}
	}
	return candidate, true
}

// Plan 选择 Coin 并确认其足以支付 required，不会发送部分金额
func Plan(objects []model.FundObject, required uint64) (model.FundObject, error) {
	selected, ok := SelectFundObject(objects, required)
	if !ok {
		return model.FundObject{}, ErrNoFundsAvailable
	}
	if selected.Balance < required {
		return model.FundObject{}, &InsufficientFundsError{
			Requested:     ToDisplay(required),
			Available:     FormatSui(selected.Balance, 4),
			RequestedMist: required,
			AvailableMist: selected.Balance,
		}
	}
	return selected, nil
}
