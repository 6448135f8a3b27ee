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

type SongStorage interface {
	Get(ctx context.Context, id string) (*Song, error)
	GetAll(ctx context.Context) ([]*Song, error)
	Create(ctx context.Context, song *Song) error
	Update(ctx context.Context, song *Song) error
	Delete(ctx context.Context, id string) error
}

type DynamoSongStorage struct {
	Client    *dynamodb.Client
	TableName string
}

func (s *DynamoSongStorage) GetAll(ctx context.Context) ([]*Song, error) {
	out, err := s.Client.Scan(ctx, &dynamodb.ScanInput{
		TableName: &s.TableName,
	})
	if err != nil {
		logging.Log.Errorf("SONG: scan failed: %v", err)
		return nil, err
	}

	var songs []*Song
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &songs); err != nil {
		logging.Log.Errorf("SONG: failed to unmarshal song list: %v", err)
		return nil, err
	}
	return songs, nil
}

func (s *DynamoSongStorage) Get(ctx context.Context, id string) (*Song, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"PK": id})
	if err != nil {
		logging.Log.Errorf("SONG: failed to marshal key for ID %s: %v", id, err)
		return nil, err
	}

	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &s.TableName,
		Key:       key,
	})
	if err != nil {
		logging.Log.Errorf("SONG: GetItem for ID %s failed: %v", id, err)
		return nil, err
	}
	if out.Item == nil {
		return nil, nil
	}

	var song Song
	if err := attributevalue.UnmarshalMap(out.Item, &song); err != nil {
		logging.Log.Errorf("SONG: failed to unmarshal song: %v", err)
		return nil, err
	}
	return &song, nil
}

func (s *DynamoSongStorage) Create(ctx context.Context, song *Song) error {
	if song.CreatedAt.IsZero() {
		song.CreatedAt = time.Now().UTC()
	}
	item, err := attributevalue.MarshalMap(song)
	if err != nil {
		logging.Log.Errorf("SONG: failed to marshal song: %v", err)
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
			logging.Log.Warnf("SONG: song with ID %s already exists", song.ID)
			return ErrItemWithIDAlreadyExists
		}
		logging.Log.Errorf("SONG: failed to create song: %v", err)
		return err
	}
	return nil
}

func (s *DynamoSongStorage) Update(ctx context.Context, song *Song) error {
	item, err := attributevalue.MarshalMap(song)
	if err != nil {
		logging.Log.Errorf("SONG: failed to marshal updated song: %v", err)
		return err
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &s.TableName,
		Item:      item,
	})
	if err != nil {
		logging.Log.Errorf("SONG: failed to update song: %v", err)
		return err
	}
	return nil
}

func (s *DynamoSongStorage) Delete(ctx context.Context, id string) error {
	key, err := attributevalue.MarshalMap(map[string]string{"PK": id})
	if err != nil {
		logging.Log.Errorf("SONG: failed to marshal delete key for ID %s: %v", id, err)
		return err
	}

	_, err = s.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: &s.TableName,
		Key:       key,
	})
	if err != nil {
		logging.Log.Errorf("SONG: failed to delete song with ID %s: %v", id, err)
		return err
	}
	logging.Log.Infof("SONG: deleted song with ID %s", id)
	return nil
}
