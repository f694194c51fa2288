// Package catalog keeps a DynamoDB record of every completed monthly download.
package catalog

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"github.com/joe-black-jb/mops-revenue/internal/revenue"
)

// DynamoAPI is the part of *dynamodb.Client the catalog needs.
type DynamoAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// Entry describes one saved month.
type Entry struct {
	ID           string         `dynamodbav:"id" json:"id"`
	Market       revenue.Market `dynamodbav:"market" json:"market"`
	Year         int            `dynamodbav:"year" json:"year"`
	Month        int            `dynamodbav:"month" json:"month"`
	FileName     string         `dynamodbav:"file_name" json:"file_name"`
	S3Key        string         `dynamodbav:"s3_key,omitempty" json:"s3_key,omitempty"`
	RowCount     int            `dynamodbav:"row_count" json:"row_count"`
	DownloadedAt time.Time      `dynamodbav:"downloaded_at" json:"downloaded_at"`
}

type Catalog struct {
	client    DynamoAPI
	tableName string
	now       func() time.Time
}

func New(client DynamoAPI, tableName string) *Catalog {
	return &Catalog{client: client, tableName: tableName, now: time.Now}
}

// Record stores entry, filling in ID and DownloadedAt when empty.
func (c *Catalog) Record(ctx context.Context, entry Entry) (Entry, error) {
	if entry.ID == "" {
		id, err := uuid.NewUUID()
		if err != nil {
			return Entry{}, fmt.Errorf("uuid create error: %w", err)
		}
		entry.ID = id.String()
	}
	if entry.DownloadedAt.IsZero() {
		entry.DownloadedAt = c.now()
	}

	item, err := attributevalue.MarshalMap(entry)
	if err != nil {
		return Entry{}, fmt.Errorf("MarshalMap err: %w", err)
	}
	_, err = c.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(c.tableName),
		Item:      item,
	})
	if err != nil {
		return Entry{}, fmt.Errorf("dynamoClient.PutItem err: %w", err)
	}
	return entry, nil
}

// List returns the entries of market (all markets when empty), newest first.
func (c *Catalog) List(ctx context.Context, market revenue.Market) ([]Entry, error) {
	input := &dynamodb.ScanInput{
		TableName: aws.String(c.tableName),
		Limit:     aws.Int32(50),
	}
	if market != "" {
		filter := expression.Name("market").Equal(expression.Value(string(market)))
		expr, err := expression.NewBuilder().WithFilter(filter).Build()
		if err != nil {
			return nil, fmt.Errorf("build expression: %w", err)
		}
		input.FilterExpression = expr.Filter()
		input.ExpressionAttributeNames = expr.Names()
		input.ExpressionAttributeValues = expr.Values()
	}

	var entries []Entry
	// pagination 用
	var lastEvaluatedKey map[string]types.AttributeValue
	for {
		input.ExclusiveStartKey = lastEvaluatedKey
		result, err := c.client.Scan(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("scan err: %w", err)
		}
		var batch []Entry
		if err := attributevalue.UnmarshalListOfMaps(result.Items, &batch); err != nil {
			return nil, fmt.Errorf("unMarshal err: %w", err)
		}
		entries = append(entries, batch...)

		if len(result.LastEvaluatedKey) == 0 {
			break
		}
		lastEvaluatedKey = result.LastEvaluatedKey
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].DownloadedAt.After(entries[j].DownloadedAt)
	})
	return entries, nil
}
