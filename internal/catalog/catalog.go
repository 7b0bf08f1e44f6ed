package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/google/uuid"
)

// Entry is one row in the metadata table, keyed by ImageKey. Writing an
// entry for an existing key overwrites the previous row.
type Entry struct {
	ImageKey          string `dynamodbav:"ImageKey"`
	SourceBucket      string `dynamodbav:"SourceBucket"`
	DestinationBucket string `dynamodbav:"DestinationBucket"`
	ProcessedAt       string `dynamodbav:"ProcessedAt"`
	ImageSize         string `dynamodbav:"ImageSize"`
	ImageFormat       string `dynamodbav:"ImageFormat"`
	ProcessingID      string `dynamodbav:"ProcessingID"`
}

// NewEntry assembles the row recorded after a successful resize-and-store.
// ProcessedAt is the current time in ISO-8601 UTC; ProcessingID identifies
// the run that produced the row.
func NewEntry(key, sourceBucket, destinationBucket, size, format string) Entry {
	return Entry{
		ImageKey:          key,
		SourceBucket:      sourceBucket,
		DestinationBucket: destinationBucket,
		ProcessedAt:       time.Now().UTC().Format(time.RFC3339),
		ImageSize:         size,
		ImageFormat:       format,
		ProcessingID:      uuid.New().String(),
	}
}

// EntryWriter is implemented by the DynamoDB-backed catalog.
type EntryWriter interface {
	Put(ctx context.Context, entry Entry) error
}

// Catalog writes entries to a DynamoDB table.
type Catalog struct {
	client dynamodbiface.DynamoDBAPI
	table  string
}

func New(client dynamodbiface.DynamoDBAPI, table string) *Catalog {
	return &Catalog{client: client, table: table}
}

// Put upserts the entry under its ImageKey.
func (c *Catalog) Put(ctx context.Context, entry Entry) error {
	item, err := dynamodbattribute.MarshalMap(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal entry for %s: %w", entry.ImageKey, err)
	}

	_, err = c.client.PutItemWithContext(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(c.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("failed to put entry for %s: %w", entry.ImageKey, err)
	}
	return nil
}
