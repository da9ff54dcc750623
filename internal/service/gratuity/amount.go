package gratuity

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"

	"gratuity-box/internal/model"
)

var (
	mistPerSui = decimal.NewFromInt(model.MistPerSui)
	maxMist    = decimal.NewFromBigInt(new(big.Int).SetUint64(^uint64(0)), 0)
)

// 运算前先限制指数，"1e-999999999" 这类输入会让 rescale 构造巨大的 big.Int
const (
	minAmountExp = -18
	maxAmountExp = 20
)

// ToBaseUnits converts a display amount ("0.1") to MIST, truncating any
// sub-MIST remainder toward zero.
func ToBaseUnits(display string) (uint64, error) {
	s := strings.TrimSpace(display)
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, display)
	}
	if outOfRange(d) {
		return 0, fmt.Errorf("%w: %q is out of range", ErrInvalidAmount, display)
	}

	mist := d.Mul(mistPerSui).Truncate(0)
	if !mist.IsPositive() {
		return 0, fmt.Errorf("%w: %q is not positive", ErrInvalidAmount, display)
	}
	if mist.GreaterThan(maxMist) {
		return 0, fmt.Errorf("%w: %q is too large", ErrInvalidAmount, display)
	}

	return mist.BigInt().Uint64(), nil
}

// outOfRange 判断数值是否必然超过 10^20 或小于 1 MIST。
// 小指数但有效位足够多的输入 ("0.100000000000000000000") 放行，其运算量与输入长度成正比。
func outOfRange(d decimal.Decimal) bool {
	exp := d.Exponent()
	if exp > maxAmountExp {
		return true
	}
	if exp < minAmountExp {
		digits := len(new(big.Int).Abs(d.Coefficient()).String())
		return int64(digits)+int64(exp) <= -9
	}
	return false
}

// ToDisplay 将 MIST 转为 SUI 字符串，去掉多余的 0 ("100000000" -> "0.1")
func ToDisplay(mist uint64) string {
	return mistToDecimal(mist).String()
}

// FormatSui 固定小数位显示，余额用 4 位，金库统计用 3 位
func FormatSui(mist uint64, places int32) string {
	return mistToDecimal(mist).StringFixed(places)
}

func mistToDecimal(mist uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(mist), -9)
}

// ShortAddress 0x12345678...abcdef 形式
func ShortAddress(addr string) string {
	if len(addr) <= 14 {
		return addr
	}
	return addr[:8] + "..." + addr[len(addr)-6:]
}
