package storage

import (
	"context"
	"time"

	"github.com/CarlManson/hottest100/logging"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

type ProfileStorage interface {
	Get(ctx context.Context, memberID string) (*MemberProfile, error)
	Put(ctx context.Context, profile *MemberProfile) error
	Delete(ctx context.Context, memberID string) error
}

type DynamoProfileStorage struct {
	Client    *dynamodb.Client
	TableName string
}

func (s *DynamoProfileStorage) Get(ctx context.Context, memberID string) (*MemberProfile, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"PK": memberID})
	if err != nil {
		logging.Log.Errorf("PROFILE: failed to marshal key for member %s: %v", memberID, err)
		return nil, err
	}

	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &s.TableName,
		Key:       key,
	})
	if err != nil {
		logging.Log.Errorf("PROFILE: GetItem for member %s failed: %v", memberID, err)
		return nil, err
	}
	if out.Item == nil {
		return nil, ErrNotFound
	}

	var profile MemberProfile
	if err := attributevalue.UnmarshalMap(out.Item, &profile); err != nil {
		logging.Log.Errorf("PROFILE: failed to unmarshal profile: %v", err)
		return nil, err
	}
	return &profile, nil
}

func (s *DynamoProfileStorage) Put(ctx context.Context, profile *MemberProfile) error {
	profile.UpdatedAt = time.Now().UTC()
	item, err := attributevalue.MarshalMap(profile)
	if err != nil {
		logging.Log.Errorf("PROFILE: failed to marshal profile: %v", err)
		return err
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &s.TableName,
		Item:      item,
	})
	if err != nil {
		logging.Log.Errorf("PROFILE: failed to store profile for member %s: %v", profile.MemberID, err)
		return err
	}
	return nil
}

func (s *DynamoProfileStorage) Delete(ctx context.Context, memberID string) error {
	key, err := attributevalue.MarshalMap(map[string]string{"PK": memberID})
	if err != nil {
		logging.Log.Errorf("PROFILE: failed to marshal delete key for member %s: %v", memberID, err)
		return err
	}

	_, err = s.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: &s.TableName,
		Key:       key,
	})
	if err != nil {
		logging.Log.Errorf("PROFILE: failed to delete profile for member %s: %v", memberID, err)
		return err
	}
	return nil
}
