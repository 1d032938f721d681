package comment

import "time"

type Status string

const (
	StatusWaiting     Status = "waiting"
	StatusApproved    Status = "approved"
	StatusNotApproved Status = "not_approved"
)

func (s Status) Valid() bool {
	switch s {
	case StatusWaiting, StatusApproved, StatusNotApproved:
		return true
	}
	return false
}

type Comment struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"product_id"`
	Name      string    `json:"name"`
	Body      string    `json:"body"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateCommentInput struct {
	Name string `json:"name" validate:"required,max=255"`
	Body string `json:"body" validate:"required"`
}
