package controllers

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	testTableSongs    = "CountdownSongs"
	testTableMembers  = "FamilyMembers"
	testTablePicks    = "MemberPicks"
	testTableResults  = "CountdownResults"
	testTableProfiles = "MemberProfiles"
)

// newLocalstackClient points the AWS SDK at the localstack DynamoDB used by
// all controller tests.
func newLocalstackClient(t *testing.T) *dynamodb.Client {
	t.Helper()

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion("us-east-1"),
		//nolint:staticcheck
		config.WithEndpointResolverWithOptions(
			aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
				return aws.Endpoint{URL: "http://localhost:4566", HostnameImmutable: true}, nil
			}),
		),
	)
	if err != nil {
		t.Fatalf("failed to load AWS config: %v", err)
	}
	return dynamodb.NewFromConfig(cfg)
}

// cleanupTable wipes a table keyed by PK alone.
func cleanupTable(t *testing.T, client *dynamodb.Client, tableName string) {
	t.Helper()
	out, err := client.Scan(context.TODO(), &dynamodb.ScanInput{
		TableName: aws.String(tableName),
	})
	if err != nil {
		t.Fatalf("cleanup scan failed: %v", err)
	}
	for _, item := range out.Items {
		key := map[string]types.AttributeValue{
			"PK": item["PK"],
		}
		_, err := client.DeleteItem(context.TODO(), &dynamodb.DeleteItemInput{
			TableName: aws.String(tableName),
			Key:       key,
		})
		if err != nil {
			t.Fatalf("cleanup delete failed: %v", err)
		}
	}
}

// cleanupPicksTable wipes the picks table, which is keyed by PK and SK.
func cleanupPicksTable(t *testing.T, client *dynamodb.Client) {
	t.Helper()
	out, err := client.Scan(context.TODO(), &dynamodb.ScanInput{
		TableName: aws.String(testTablePicks),
	})
	if err != nil {
		t.Fatalf("cleanup scan failed: %v", err)
	}
	for _, item := range out.Items {
		key := map[string]types.AttributeValue{
			"PK": item["PK"],
			"SK": item["SK"],
		}
		_, err := client.DeleteItem(context.TODO(), &dynamodb.DeleteItemInput{
			TableName: aws.String(testTablePicks),
			Key:       key,
		})
		if err != nil {
			t.Fatalf("cleanup delete failed: %v", err)
		}
	}
}
