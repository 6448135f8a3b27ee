package storage

import (
	"context"
	"errors"
	"time"

	"github.com/CarlManson/hottest100/logging"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type ResultStorage interface {
	GetAll(ctx context.Context) ([]*CountdownResult, error)
	// Create fails with ErrPositionTaken when the position already holds a
	// result; Update overwrites it (corrections during the broadcast).
	Create(ctx context.Context, result *CountdownResult) error
	Update(ctx context.Context, result *CountdownResult) error
	Delete(ctx context.Context, position int) error
	DeleteAll(ctx context.Context) error
}

type DynamoResultStorage struct {
	Client    *dynamodb.Client
	TableName string
}

func (s *DynamoResultStorage) GetAll(ctx context.Context) ([]*CountdownResult, error) {
	out, err := s.Client.Scan(ctx, &dynamodb.ScanInput{
		TableName: &s.TableName,
	})
	if err != nil {
		logging.Log.Errorf("RESULT: scan failed: %v", err)
		return nil, err
	}

	var results []*CountdownResult
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &results); err != nil {
		logging.Log.Errorf("RESULT: failed to unmarshal result list: %v", err)
		return nil, err
	}
	return results, nil
}

func (s *DynamoResultStorage) Create(ctx context.Context, result *CountdownResult) error {
	if result.Timestamp.IsZero() {
		result.Timestamp = time.Now().UTC()
	}
	item, err := attributevalue.MarshalMap(result)
	if err != nil {
		logging.Log.Errorf("RESULT: failed to marshal result: %v", err)
		return err
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           &s.TableName,
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	})
	if err != nil {
		var cce *types.ConditionalCheckFailedException
		if errors.As(err, &cce) {
			logging.Log.Warnf("RESULT: position %d already holds a result", result.Position)
			return ErrPositionTaken
		}
		logging.Log.Errorf("RESULT: failed to create result: %v", err)
		return err
	}
	return nil
}

func (s *DynamoResultStorage) Update(ctx context.Context, result *CountdownResult) error {
	if result.Timestamp.IsZero() {
		result.Timestamp = time.Now().UTC()
	}
	item, err := attributevalue.MarshalMap(result)
	if err != nil {
		logging.Log.Errorf("RESULT: failed to marshal updated result: %v", err)
		return err
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &s.TableName,
		Item:      item,
	})
	if err != nil {
		logging.Log.Errorf("RESULT: failed to update result at position %d: %v", result.Position, err)
		return err
	}
	return nil
}

func (s *DynamoResultStorage) Delete(ctx context.Context, position int) error {
	key, err := attributevalue.MarshalMap(map[string]int{"PK": position})
	if err != nil {
		logging.Log.Errorf("RESULT: failed to marshal delete key for position %d: %v", position, err)
		return err
	}

	_, err = s.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: &s.TableName,
		Key:       key,
	})
	if err != nil {
		logging.Log.Errorf("RESULT: failed to delete result at position %d: %v", position, err)
		return err
	}
	logging.Log.Infof("RESULT: deleted result at position %d", position)
	return nil
}

func (s *DynamoResultStorage) DeleteAll(ctx context.Context) error {
	var lastEvaluatedKey map[string]types.AttributeValue

	for {
		scanOutput, err := s.Client.Scan(ctx, &dynamodb.ScanInput{
			TableName:            &s.TableName,
			ExclusiveStartKey:    lastEvaluatedKey,
			ProjectionExpression: aws.String("PK"),
		})
		if err != nil {
			logging.Log.Errorf("RESULT: scan for delete failed: %v", err)
			return err
		}

		var writeRequests []types.WriteRequest
		for _, item := range scanOutput.Items {
			writeRequests = append(writeRequests, types.WriteRequest{
				DeleteRequest: &types.DeleteRequest{
					Key: map[string]types.AttributeValue{
						"PK": item["PK"],
					},
				},
			})
		}

		for i := 0; i < len(writeRequests); i += 25 {
			end := i + 25
			if end > len(writeRequests) {
				end = len(writeRequests)
			}
			_, err := s.Client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
				RequestItems: map[string][]types.WriteRequest{
					s.TableName: writeRequests[i:end],
				},
			})
			if err != nil {
				logging.Log.Errorf("RESULT: batch delete failed: %v", err)
				return err
			}
			logging.Log.Infof("RESULT: deleted batch of %d results", end-i)
		}

		if scanOutput.LastEvaluatedKey == nil {
			break
		}
		lastEvaluatedKey = scanOutput.LastEvaluatedKey
	}

	return nil
}
