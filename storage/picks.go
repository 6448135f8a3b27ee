package storage

import (
	"context"
	"time"

	"github.com/CarlManson/hottest100/logging"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type PickStorage interface {
	GetAll(ctx context.Context) ([]*Pick, error)
	GetByMember(ctx context.Context, memberID string) ([]*Pick, error)
	// ReplaceForMember swaps a member's whole pick list in one go: picks are
	// only ever edited as a full set, never one at a time.
	ReplaceForMember(ctx context.Context, memberID string, picks []*Pick) error
	DeleteForMember(ctx context.Context, memberID string) error
}

type DynamoPickStorage struct {
	Client    *dynamodb.Client
	TableName string
}

func (s *DynamoPickStorage) GetAll(ctx context.Context) ([]*Pick, error) {
	out, err := s.Client.Scan(ctx, &dynamodb.ScanInput{
		TableName: &s.TableName,
	})
	if err != nil {
		logging.Log.Errorf("PICK: scan failed: %v", err)
		return nil, err
	}

	var picks []*Pick
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &picks); err != nil {
		logging.Log.Errorf("PICK: failed to unmarshal pick list: %v", err)
		return nil, err
	}
	return picks, nil
}

func (s *DynamoPickStorage) GetByMember(ctx context.Context, memberID string) ([]*Pick, error) {
	input := &dynamodb.QueryInput{
		TableName:              &s.TableName,
		KeyConditionExpression: aws.String("PK = :member"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":member": &types.AttributeValueMemberS{Value: memberID},
		},
	}

	output, err := s.Client.Query(ctx, input)
	if err != nil {
		logging.Log.Errorf("PICK: failed to query picks for member %s: %v", memberID, err)
		return nil, err
	}

	var picks []*Pick
	if err := attributevalue.UnmarshalListOfMaps(output.Items, &picks); err != nil {
		logging.Log.Errorf("PICK: failed to unmarshal picks for member %s: %v", memberID, err)
		return nil, err
	}
	return picks, nil
}

func (s *DynamoPickStorage) ReplaceForMember(ctx context.Context, memberID string, picks []*Pick) error {
	if err := s.DeleteForMember(ctx, memberID); err != nil {
		return err
	}

	now := time.Now().UTC()
	writeRequests := make([]types.WriteRequest, 0, len(picks))
	for _, p := range picks {
		p.MemberID = memberID
		if p.Timestamp.IsZero() {
			p.Timestamp = now
		}
		item, err := attributevalue.MarshalMap(p)
		if err != nil {
			logging.Log.Errorf("PICK: failed to marshal pick: %v", err)
			return err
		}
		writeRequests = append(writeRequests, types.WriteRequest{
			PutRequest: &types.PutRequest{Item: item},
		})
	}

	if err := s.batchWrite(ctx, writeRequests); err != nil {
		logging.Log.Errorf("PICK: batch put for member %s failed: %v", memberID, err)
		return err
	}
	logging.Log.Infof("PICK: replaced picks for member %s with %d entries", memberID, len(picks))
	return nil
}

func (s *DynamoPickStorage) DeleteForMember(ctx context.Context, memberID string) error {
	existing, err := s.GetByMember(ctx, memberID)
	if err != nil {
		return err
	}

	writeRequests := make([]types.WriteRequest, 0, len(existing))
	for _, p := range existing {
		writeRequests = append(writeRequests, types.WriteRequest{
			DeleteRequest: &types.DeleteRequest{
				Key: map[string]types.AttributeValue{
					"PK": &types.AttributeValueMemberS{Value: p.MemberID},
					"SK": &types.AttributeValueMemberS{Value: p.SongID},
				},
			},
		})
	}

	if err := s.batchWrite(ctx, writeRequests); err != nil {
		logging.Log.Errorf("PICK: batch delete for member %s failed: %v", memberID, err)
		return err
	}
	return nil
}

// batchWrite sends write requests in DynamoDB's 25-item chunks.
func (s *DynamoPickStorage) batchWrite(ctx context.Context, writeRequests []types.WriteRequest) error {
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
			return err
		}
	}
	return nil
}
