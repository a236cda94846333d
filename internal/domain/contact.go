package domain

import (
	"context"
	"time"
)

// ContactInquiry is a message sent through the public contact form.
type ContactInquiry struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company,omitempty"`
	Budget  string `json:"budget,omitempty"`
	Message string `json:"message"`
}

type InquiryStatus string

const (
	InquiryNew      InquiryStatus = "new"
	InquiryReplied  InquiryStatus = "replied"
	InquiryArchived InquiryStatus = "archived"
)

func (s InquiryStatus) Valid() bool {
	switch s {
	case InquiryNew, InquiryReplied, InquiryArchived:
		return true
	}
	return false
}

// Contact is a stored inquiry.
type Contact struct {
	ID int `json:"id"`
	ContactInquiry
	Status      InquiryStatus `json:"status"`
	CreatedAt   time.Time     `json:"createdAt"`
	RespondedAt *time.Time    `json:"respondedAt,omitempty"`
}

type ContactRepository interface {
	Create(ctx context.Context, inquiry ContactInquiry) (int, error)
	List(ctx context.Context) ([]Contact, error)
	UpdateStatus(ctx context.Context, id int, status InquiryStatus) error
}
