package dynamo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/uniform-shop-api/internal/domain"
)

// EmailTokenRepo manages single-use email token records.
// PK: token_hash. All state transitions go through Consume, a single
// conditional UpdateItem — the store primitive is the only serialization
// point, so no application-level locking is needed.
type EmailTokenRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewEmailTokenRepo(client *dynamodb.Client, tableName string) *EmailTokenRepo {
	return &EmailTokenRepo{client: client, tableName: tableName}
}

// Put inserts a new token record. The condition guards against hash-key
// collisions so an insert can never silently overwrite a live token.
func (r *EmailTokenRepo) Put(ctx context.Context, t *domain.EmailToken) error {
	item, err := attributevalue.MarshalMap(t)
	if err != nil {
		return fmt.Errorf("marshal email token: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(token_hash)"),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return fmt.Errorf("token hash already exists: %w", domain.ErrConflict)
		}
		return fmt.Errorf("put email token: %v: %w", err, domain.ErrStoreUnavailable)
	}
	return nil
}

// Consume is the atomic find-and-mark-used step: one UpdateItem whose
// condition requires the record to exist, carry the expected purpose, be
// unconsumed and unexpired, and whose update sets used_at in the same call.
// Two concurrent calls with the same hash therefore yield exactly one success.
// Every condition failure collapses into ErrTokenInvalidOrExpired; the
// distinguishable cause is logged, never returned.
func (r *EmailTokenRepo) Consume(ctx context.Context, tokenHash string, purpose domain.TokenPurpose, now time.Time) (*domain.EmailToken, error) {
	usedAt, err := attributevalue.Marshal(now.UTC())
	if err != nil {
		return nil, fmt.Errorf("marshal used_at: %w", err)
	}
	out, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("token_hash", tokenHash),
		ConditionExpression: aws.String(
			"attribute_exists(token_hash) AND #p = :p AND attribute_not_exists(used_at) AND expires_at > :now"),
		UpdateExpression:         aws.String("SET used_at = :ua"),
		ExpressionAttributeNames: map[string]string{"#p": "purpose"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":p":   &types.AttributeValueMemberS{Value: string(purpose)},
			":now": &types.AttributeValueMemberN{Value: strconv.FormatInt(now.Unix(), 10)},
			":ua":  usedAt,
		},
		ReturnValues:                        types.ReturnValueAllNew,
		ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			slog.Info("email token consumption rejected",
				"purpose", purpose,
				"cause", rejectCause(ccf.Item, string(purpose), now))
			return nil, domain.ErrTokenInvalidOrExpired
		}
		return nil, fmt.Errorf("consume email token: %v: %w", err, domain.ErrStoreUnavailable)
	}

	var t domain.EmailToken
	if err := attributevalue.UnmarshalMap(out.Attributes, &t); err != nil {
		return nil, fmt.Errorf("unmarshal email token: %w", err)
	}
	return &t, nil
}

// rejectCause classifies a failed conditional consume from the old item image.
// Internal observability only — callers of Consume always see the unified error.
func rejectCause(item map[string]types.AttributeValue, wantPurpose string, now time.Time) string {
	if len(item) == 0 {
		return "not_found"
	}
	if _, ok := item["used_at"]; ok {
		return "already_used"
	}
	if p, ok := item["purpose"].(*types.AttributeValueMemberS); ok && wantPurpose != "" && p.Value != wantPurpose {
		return "wrong_purpose"
	}
	if e, ok := item["expires_at"].(*types.AttributeValueMemberN); ok {
		if exp, err := strconv.ParseInt(e.Value, 10, 64); err == nil && exp <= now.Unix() {
			return "expired"
		}
	}
	return "condition_failed"
}
