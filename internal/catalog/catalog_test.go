package catalog

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joe-black-jb/mops-revenue/internal/revenue"
)

type fakeDynamo struct {
	items  []map[string]types.AttributeValue
	scans  []*dynamodb.ScanInput
	pageSz int
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.items = append(f.items, in.Item)
	return &dynamodb.PutItemOutput{}, nil
}

// Scan ignores the filter; tests check the filter separately.
func (f *fakeDynamo) Scan(_ context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	copied := *in
	f.scans = append(f.scans, &copied)

	start := 0
	if key, ok := in.ExclusiveStartKey["n"].(*types.AttributeValueMemberN); ok {
		start, _ = strconv.Atoi(key.Value)
	}
	end := min(start+f.pageSz, len(f.items))
	out := &dynamodb.ScanOutput{Items: f.items[start:end]}
	if end < len(f.items) {
		out.LastEvaluatedKey = map[string]types.AttributeValue{"n": &types.AttributeValueMemberN{Value: strconv.Itoa(end)}}
	}
	return out, nil
}

func TestCatalog_Record(t *testing.T) {
	client := &fakeDynamo{}
	c := New(client, "mops_revenue_downloads")
	fixed := time.Date(2024, 8, 10, 9, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return fixed }

	entry, err := c.Record(context.Background(), Entry{
		Market: revenue.MarketListed, Year: 113, Month: 7,
		FileName: "revenue_sii_113_07.csv", RowCount: 980,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, fixed, entry.DownloadedAt)
	require.Len(t, client.items, 1)

	var stored Entry
	require.NoError(t, attributevalue.UnmarshalMap(client.items[0], &stored))
	assert.Equal(t, entry.ID, stored.ID)
	assert.Equal(t, revenue.MarketListed, stored.Market)
	assert.Equal(t, 113, stored.Year)
	assert.Equal(t, 7, stored.Month)
	assert.Equal(t, 980, stored.RowCount)
	assert.True(t, fixed.Equal(stored.DownloadedAt))
	_, hasKey := client.items[0]["s3_key"]
	assert.False(t, hasKey)
}

func TestCatalog_ListPaginatesAndSorts(t *testing.T) {
	client := &fakeDynamo{pageSz: 2}
	c := New(client, "t")
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range 5 {
		_, err := c.Record(context.Background(), Entry{
			Market: revenue.MarketOTC, Year: 113, Month: i + 1, DownloadedAt: base.AddDate(0, 0, i),
		})
		require.NoError(t, err)
	}

	entries, err := c.List(context.Background(), "")
	require.NoError(t, err)

	require.Len(t, entries, 5)
	assert.Len(t, client.scans, 3)
	assert.Equal(t, 5, entries[0].Month)
	assert.Equal(t, 1, entries[4].Month)
	assert.Nil(t, client.scans[0].FilterExpression)
}

func TestCatalog_ListFiltersByMarket(t *testing.T) {
	client := &fakeDynamo{pageSz: 10}
	c := New(client, "t")

	_, err := c.List(context.Background(), revenue.MarketListed)
	require.NoError(t, err)

	require.Len(t, client.scans, 1)
	scan := client.scans[0]
	assert.Equal(t, "t", aws.ToString(scan.TableName))
	require.NotNil(t, scan.FilterExpression)
	assert.Equal(t, "#0 = :0", *scan.FilterExpression)
	assert.Equal(t, map[string]string{"#0": "market"}, scan.ExpressionAttributeNames)
	assert.Equal(t, &types.AttributeValueMemberS{Value: "sii"}, scan.ExpressionAttributeValues[":0"])
}
