package gratuity

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/blake2b"

	"gratuity-box/internal/model"
)

const (
	MoveModule   = "gratuity_box"
	MoveFunction = "deposit_gratuity"
)

// BuildCallDescription 构造 split + deposit_gratuity 调用描述
// 纯函数：相同输入得到结构相同的结果
func BuildCallDescription(vaultID, packageID string, selected model.FundObject, amount uint64) model.CallDescription {
	return model.CallDescription{
		Split: model.SplitIntent{
			CoinObjectID: selected.ObjectID,
			Amount:       amount,
		},
		Call: model.MoveCall{
			Target: fmt.Sprintf("%s::%s::%s", packageID, MoveModule, MoveFunction),
			Arguments: []model.CallArgument{
				{Kind: model.ArgKindObject, ObjectID: vaultID},
				{Kind: model.ArgKindResult, Result: 0}, // split 的结果
			},
		},
	}
}

// Digest blake2b-256 over the JSON encoding, hex with 0x prefix.
func Digest(call model.CallDescription) (string, error) {
	raw, err := json.Marshal(call)
	if err != nil {
		return "", err
	}
	sum := blake2b.Sum256(raw)
	return "0x" + hex.EncodeToString(sum[:]), nil
}
