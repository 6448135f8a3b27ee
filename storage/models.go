package storage

import "time"

type Song struct {
	ID         string    `dynamodbav:"PK"`
	Title      string    `dynamodbav:"Title"`
	Artist     string    `dynamodbav:"Artist"`
	Thumbnail  string    `dynamodbav:"Thumbnail"`
	Australian bool      `dynamodbav:"Australian"`
	CreatedAt  time.Time `dynamodbav:"CreatedAt"`
}

type FamilyMember struct {
	ID        string    `dynamodbav:"PK"`
	Name      string    `dynamodbav:"Name"`
	CreatedAt time.Time `dynamodbav:"CreatedAt"`
}

type Pick struct {
	MemberID  string    `dynamodbav:"PK" json:"memberId"`
	SongID    string    `dynamodbav:"SK" json:"songId"`
	Rank      int       `dynamodbav:"Rank" json:"rank"`
	Timestamp time.Time `dynamodbav:"Timestamp" json:"timestamp"`
}

// CountdownResult is keyed by position. Positions 1-100 and 101-200 live in
// the same table; the bands never overlap so the key stays unique.
type CountdownResult struct {
	Position  int       `dynamodbav:"PK"`
	SongID    string    `dynamodbav:"SongID"`
	Timestamp time.Time `dynamodbav:"Timestamp"`
}

type MemberProfile struct {
	MemberID    string    `dynamodbav:"PK"`
	Label       string    `dynamodbav:"Label"`
	Description string    `dynamodbav:"Description"`
	Commentary  string    `dynamodbav:"Commentary"`
	UpdatedAt   time.Time `dynamodbav:"UpdatedAt"`
}
