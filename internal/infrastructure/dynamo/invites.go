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

// InviteRepo manages supplier invite records.
// PK: token_hash — same single-use discipline as EmailTokenRepo, with the
// consuming user recorded alongside the used marker.
type InviteRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewInviteRepo(client *dynamodb.Client, tableName string) *InviteRepo {
	return &InviteRepo{client: client, tableName: tableName}
}

func (r *InviteRepo) Put(ctx context.Context, inv *domain.SupplierInvite) error {
	item, err := attributevalue.MarshalMap(inv)
	if err != nil {
		return fmt.Errorf("marshal invite: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(token_hash)"),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return fmt.Errorf("invite hash already exists: %w", domain.ErrConflict)
		}
		return fmt.Errorf("put invite: %v: %w", err, domain.ErrStoreUnavailable)
	}
	return nil
}

// Consume marks the invite used and records who consumed it, in one
// conditional write. Unconsumed-and-unexpired is checked in the condition, so
// a retry after a timed-out but successful write observes used_at and fails.
func (r *InviteRepo) Consume(ctx context.Context, tokenHash, usedBy string, now time.Time) (*domain.SupplierInvite, error) {
	usedAt, err := attributevalue.Marshal(now.UTC())
	if err != nil {
		return nil, fmt.Errorf("marshal used_at: %w", err)
	}
	out, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("token_hash", tokenHash),
		ConditionExpression: aws.String(
			"attribute_exists(token_hash) AND attribute_not_exists(used_at) AND expires_at > :now"),
		UpdateExpression: aws.String("SET used_at = :ua, used_by = :ub"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":now": &types.AttributeValueMemberN{Value: strconv.FormatInt(now.Unix(), 10)},
			":ua":  usedAt,
			":ub":  &types.AttributeValueMemberS{Value: usedBy},
		},
		ReturnValues:                        types.ReturnValueAllNew,
		ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			slog.Info("supplier invite consumption rejected",
				"cause", rejectCause(ccf.Item, "", now))
			return nil, domain.ErrTokenInvalidOrExpired
		}
		return nil, fmt.Errorf("consume invite: %v: %w", err, domain.ErrStoreUnavailable)
	}

	var inv domain.SupplierInvite
	if err := attributevalue.UnmarshalMap(out.Attributes, &inv); err != nil {
		return nil, fmt.Errorf("unmarshal invite: %w", err)
	}
	return &inv, nil
}
