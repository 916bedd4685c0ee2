package dynamo

import (
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildUpdateExpr_SingleField(t *testing.T) {
	ue, err := buildUpdateExpr(map[string]interface{}{"verified": true})
	require.NoError(t, err)
	assert.Equal(t, "SET #f0 = :v0", ue.Expr)
	assert.Equal(t, map[string]string{"#f0": "verified"}, ue.Names)
	_, ok := ue.Values[":v0"]
	assert.True(t, ok)
}

func TestBuildUpdateExpr_MultipleFields_Deterministic(t *testing.T) {
	updates := map[string]interface{}{
		"role":             "supplier",
		"supplier_id":      "s1",
		"supplier_pending": false,
	}
	// Call twice to verify determinism.
	ue1, err := buildUpdateExpr(updates)
	require.NoError(t, err)
	ue2, err := buildUpdateExpr(updates)
	require.NoError(t, err)

	assert.Equal(t, ue1.Expr, ue2.Expr)

	// Keys must be sorted: role < supplier_id < supplier_pending
	assert.Equal(t, "role", ue1.Names["#f0"])
	assert.Equal(t, "supplier_id", ue1.Names["#f1"])
	assert.Equal(t, "supplier_pending", ue1.Names["#f2"])
	assert.Equal(t, "SET #f0 = :v0, #f1 = :v1, #f2 = :v2", ue1.Expr)
}

func TestBuildUpdateExpr_ValuesMarshalledCorrectly(t *testing.T) {
	ue, err := buildUpdateExpr(map[string]interface{}{"enable": true})
	require.NoError(t, err)
	av, ok := ue.Values[":v0"]
	require.True(t, ok)
	boolVal, isBool := av.(*types.AttributeValueMemberBOOL)
	require.True(t, isBool)
	assert.True(t, boolVal.Value)
}

func TestBuildUpdateExpr_EmptyMap_ReturnsError(t *testing.T) {
	_, err := buildUpdateExpr(map[string]interface{}{})
	assert.ErrorContains(t, err, "no fields to update")
}

func TestRejectCause(t *testing.T) {
	now := time.Now()
	future := &types.AttributeValueMemberN{Value: "99999999999"}
	past := &types.AttributeValueMemberN{Value: "1"}
	purpose := &types.AttributeValueMemberS{Value: "verify_email"}

	tests := []struct {
		name string
		item map[string]types.AttributeValue
		want string
	}{
		{"missing item", nil, "not_found"},
		{
			"already used",
			map[string]types.AttributeValue{
				"used_at":    &types.AttributeValueMemberS{Value: "2026-01-01T00:00:00Z"},
				"purpose":    purpose,
				"expires_at": future,
			},
			"already_used",
		},
		{
			"wrong purpose",
			map[string]types.AttributeValue{
				"purpose":    &types.AttributeValueMemberS{Value: "reset_password"},
				"expires_at": future,
			},
			"wrong_purpose",
		},
		{
			"expired",
			map[string]types.AttributeValue{
				"purpose":    purpose,
				"expires_at": past,
			},
			"expired",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rejectCause(tt.item, "verify_email", now))
		})
	}
}
