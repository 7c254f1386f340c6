package models

import "time"

type Team struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	LeadID    int64     `json:"lead_id" db:"lead_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	MemberIDs []int64   `json:"member_ids" db:"-"`
}

func (t *Team) HasMember(userID int64) bool {
	for _, id := range t.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}
