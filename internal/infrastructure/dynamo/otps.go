package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/storefront-api/internal/domain"
)

// OTPRepo is the shared OTP store for multi-instance deployments.
// PK: identifier. The expires_at attribute doubles as the table's TTL, so
// stale records are eventually reaped even without a verification attempt.
type OTPRepo struct {
	client    *dynamodb.Client
	tableName string
	ttl       time.Duration

	now func() time.Time
}

func NewOTPRepo(client *dynamodb.Client, tableName string, ttl time.Duration) *OTPRepo {
	return &OTPRepo{client: client, tableName: tableName, ttl: ttl, now: time.Now}
}

// Put creates or overwrites the record for identifier, resetting the attempt
// counter and restarting the TTL.
func (r *OTPRepo) Put(ctx context.Context, identifier, code string) error {
	now := r.now()
	rec := &domain.OTPRecord{
		Identifier: identifier,
		Code:       code,
		ExpiresAt:  now.Add(r.ttl).Unix(),
		Attempts:   0,
		CreatedAt:  now.Unix(),
	}
	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return fmt.Errorf("marshal otp record: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *OTPRepo) Get(ctx context.Context, identifier string) (*domain.OTPRecord, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("identifier", identifier),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("otp record for %s: %w", identifier, domain.ErrNotFound)
	}
	var rec domain.OTPRecord
	if err := attributevalue.UnmarshalMap(out.Item, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// RecordAttempt atomically increments the attempt counter. The condition
// expression keeps this a strict mutation of an existing record: incrementing
// a missing identifier maps to domain.ErrNotFound instead of creating one.
func (r *OTPRepo) RecordAttempt(ctx context.Context, identifier string) error {
	_, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 strKey("identifier", identifier),
		UpdateExpression:    aws.String("ADD attempts :one"),
		ConditionExpression: aws.String("attribute_exists(identifier)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one": &types.AttributeValueMemberN{Value: "1"},
		},
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return fmt.Errorf("otp record for %s: %w", identifier, domain.ErrNotFound)
		}
		return err
	}
	return nil
}

func (r *OTPRepo) Delete(ctx context.Context, identifier string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("identifier", identifier),
	})
	return err
}
