package models

import (
	"time"

	"github.com/CarlManson/hottest100/storage"
)

type ProfileResponse struct {
	MemberID    string    `json:"memberId"`
	Label       string    `json:"label"`
	Description string    `json:"description"`
	Commentary  string    `json:"commentary"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func TransformProfileFromStorage(p *storage.MemberProfile) ProfileResponse {
	return ProfileResponse{
		MemberID:    p.MemberID,
		Label:       p.Label,
		Description: p.Description,
		Commentary:  p.Commentary,
		UpdatedAt:   p.UpdatedAt,
	}
}
