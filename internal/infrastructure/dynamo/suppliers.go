package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/uniform-shop-api/internal/domain"
)

// SupplierRepo provides typed DynamoDB operations for the suppliers table.
type SupplierRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewSupplierRepo(client *dynamodb.Client, tableName string) *SupplierRepo {
	return &SupplierRepo{client: client, tableName: tableName}
}

func (r *SupplierRepo) Put(ctx context.Context, s *domain.Supplier) error {
	item, err := attributevalue.MarshalMap(s)
	if err != nil {
		return fmt.Errorf("marshal supplier: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put supplier: %v: %w", err, domain.ErrStoreUnavailable)
	}
	return nil
}

func (r *SupplierRepo) Get(ctx context.Context, supplierID string) (*domain.Supplier, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("supplier_id", supplierID),
	})
	if err != nil {
		return nil, fmt.Errorf("get supplier: %v: %w", err, domain.ErrStoreUnavailable)
	}
	if out.Item == nil {
		return nil, fmt.Errorf("supplier not found: %w", domain.ErrNotFound)
	}
	var s domain.Supplier
	if err := attributevalue.UnmarshalMap(out.Item, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
