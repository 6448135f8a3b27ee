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

type MemberStorage interface {
	Get(ctx context.Context, id string) (*FamilyMember, error)
	GetAll(ctx context.Context) ([]*FamilyMember, error)
	Create(ctx context.Context, member *FamilyMember) error
	Update(ctx context.Context, member *FamilyMember) error
	Delete(ctx context.Context, id string) error
}

type DynamoMemberStorage struct {
	Client    *dynamodb.Client
	TableName string
}

func (s *DynamoMemberStorage) GetAll(ctx context.Context) ([]*FamilyMember, error) {
	out, err := s.Client.Scan(ctx, &dynamodb.ScanInput{
		TableName: &s.TableName,
	})
	if err != nil {
		logging.Log.Errorf("MEMBER: scan failed: %v", err)
		return nil, err
	}

	var members []*FamilyMember
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &members); err != nil {
		logging.Log.Errorf("MEMBER: failed to unmarshal member list: %v", err)
		return nil, err
	}
	return members, nil
}

func (s *DynamoMemberStorage) Get(ctx context.Context, id string) (*FamilyMember, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"PK": id})
	if err != nil {
		logging.Log.Errorf("MEMBER: failed to marshal key for ID %s: %v", id, err)
		return nil, err
	}

	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &s.TableName,
		Key:       key,
	})
	if err != nil {
		logging.Log.Errorf("MEMBER: GetItem for ID %s failed: %v", id, err)
		return nil, err
	}
	if out.Item == nil {
		return nil, nil
	}

	var member FamilyMember
	if err := attributevalue.UnmarshalMap(out.Item, &member); err != nil {
		logging.Log.Errorf("MEMBER: failed to unmarshal member: %v", err)
		return nil, err
	}
	return &member, nil
}

func (s *DynamoMemberStorage) Create(ctx context.Context, member *FamilyMember) error {
	if member.CreatedAt.IsZero() {
		member.CreatedAt = time.Now().UTC()
	}
	item, err := attributevalue.MarshalMap(member)
	if err != nil {
		logging.Log.Errorf("MEMBER: failed to marshal member: %v", err)
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
			logging.Log.Warnf("MEMBER: member with ID %s already exists", member.ID)
			return ErrItemWithIDAlreadyExists
		}
		logging.Log.Errorf("MEMBER: failed to create member: %v", err)
		return err
	}
	return nil
}

func (s *DynamoMemberStorage) Update(ctx context.Context, member *FamilyMember) error {
	item, err := attributevalue.MarshalMap(member)
	if err != nil {
		logging.Log.Errorf("MEMBER: failed to marshal updated member: %v", err)
		return err
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &s.TableName,
		Item:      item,
	})
	if err != nil {
		logging.Log.Errorf("MEMBER: failed to update member: %v", err)
		return err
	}
	return nil
}

func (s *DynamoMemberStorage) Delete(ctx context.Context, id string) error {
	key, err := attributevalue.MarshalMap(map[string]string{"PK": id})
	if err != nil {
		logging.Log.Errorf("MEMBER: failed to marshal delete key for ID %s: %v", id, err)
		return err
	}

	_, err = s.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: &s.TableName,
		Key:       key,
	})
	if err != nil {
		logging.Log.Errorf("MEMBER: failed to delete member with ID %s: %v", id, err)
		return err
	}
	logging.Log.Infof("MEMBER: deleted member with ID %s", id)
	return nil
}
