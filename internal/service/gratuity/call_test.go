package gratuity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gratuity-box/internal/model"
)

func TestBuildCallDescription(t *testing.T) {
	coin := model.FundObject{ObjectID: "0xcoin", Balance: 150_000_000}
	call := BuildCallDescription("0xvault", "0xpkg", coin, 100_000_000)

	assert.Equal(t, "0xpkg::gratuity_box::deposit_gratuity", call.Call.Target)
	assert.Equal(t, model.SplitIntent{CoinObjectID: "0xcoin", Amount: 100_000_000}, call.Split)
	require.Len(t, call.Call.Arguments, 2)
	assert.Equal(t, model.CallArgument{Kind: model.ArgKindObject, ObjectID: "0xvault"}, call.Call.Arguments[0])
	assert.Equal(t, model.ArgKindResult, call.Call.Arguments[1].Kind)
}

func TestBuildCallDescription_Idempotent(t *testing.T) {
	coin := model.FundObject{ObjectID: "0xcoin", Balance: 150_000_000}
	a := BuildCallDescription("0xvault", "0xpkg", coin, 100_000_000)
	b := BuildCallDescription("0xvault", "0xpkg", coin, 100_000_000)
	assert.Equal(t, a, b)

	da, err := Digest(a)
	require.NoError(t, err)
	db, err := Digest(b)
	require.NoError(t, err)
	assert.Equal(t, da, db)
	assert.Len(t, da, 66)

	c := BuildCallDescription("0xvault", "0xpkg", coin, 100_000_001)
	dc, err := Digest(c)
	require.NoError(t, err)
	assert.NotEqual(t, da, dc)
}
