package dto

import (
	"time"

	"github.com/alirazi1992/Update3-Ticketing/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Title         string                `json:"title"`
	Description   string                `json:"description"`
	CategoryID    string                `json:"category_id"`
	SubcategoryID *string               `json:"subcategory_id"`
	Priority      domain.TicketPriority `json:"priority"`
}

// UpdateTicketRequest is a partial patch; absent fields mean no change,
// except due_date which an admin request always writes as given.
type UpdateTicketRequest struct {
	Status      *domain.TicketStatus   `json:"status"`
	Priority    *domain.TicketPriority `json:"priority"`
	AssignedTo  *string                `json:"assigned_to"`
	DueDate     *time.Time             `json:"due_date"`
	Description *string                `json:"description"`
}

// AssignTicketRequest payload.
type AssignTicketRequest struct {
	TechnicianID string `json:"technician_id"`
}

// TicketResponse is the hydrated ticket shape.
type TicketResponse struct {
	ID              string                `json:"id"`
	Title           string                `json:"title"`
	Description     string                `json:"description"`
	CategoryID      string                `json:"category_id"`
	CategoryName    string                `json:"category_name"`
	SubcategoryID   *string               `json:"subcategory_id"`
	SubcategoryName *string               `json:"subcategory_name"`
	Priority        domain.TicketPriority `json:"priority"`
	Status          domain.TicketStatus   `json:"status"`
	CreatedBy       TicketPartyResponse   `json:"created_by"`
	AssignedTo      *TicketPartyResponse  `json:"assigned_to"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
	DueDate         *time.Time            `json:"due_date"`
}

// TicketPartyResponse identifies a user attached to a ticket.
type TicketPartyResponse struct {
	UserID     string  `json:"user_id"`
	FullName   string  `json:"full_name"`
	Email      string  `json:"email"`
	Phone      *string `json:"phone,omitempty"`
	Department *string `json:"department,omitempty"`
}

// CreateTicketMessageRequest payload. Status is an optional transition
// bundled with the message.
type CreateTicketMessageRequest struct {
	Message string               `json:"message"`
	Status  *domain.TicketStatus `json:"status"`
}

// TicketMessageResponse represents one thread entry.
type TicketMessageResponse struct {
	ID           string              `json:"id"`
	TicketID     string              `json:"ticket_id"`
	AuthorUserID string              `json:"author_user_id"`
	AuthorName   string              `json:"author_name"`
	AuthorEmail  string              `json:"author_email"`
	Message      string              `json:"message"`
	Status       domain.TicketStatus `json:"status"`
	CreatedAt    time.Time           `json:"created_at"`
}

// TicketFromView maps a hydrated ticket onto its response shape.
func TicketFromView(view *domain.TicketView) TicketResponse {
	resp := TicketResponse{
		ID:              view.ID,
		Title:           view.Title,
		Description:     view.Description,
		CategoryID:      view.CategoryID,
		CategoryName:    view.CategoryName,
		SubcategoryID:   view.SubcategoryID,
		SubcategoryName: view.SubcategoryName,
		Priority:        view.Priority,
		Status:          view.Status,
		CreatedBy: TicketPartyResponse{
			UserID:     view.CreatedByUserID,
			FullName:   view.CreatedByName,
			Email:      view.CreatedByEmail,
			Phone:      view.CreatedByPhone,
			Department: view.CreatedByDepartment,
		},
		CreatedAt: view.CreatedAt,
		UpdatedAt: view.UpdatedAt,
		DueDate:   view.DueDate,
	}
	if view.AssignedToUserID != nil {
		resp.AssignedTo = &TicketPartyResponse{
			UserID: *view.AssignedToUserID,
		}
		if view.AssignedToName != nil {
			resp.AssignedTo.FullName = *view.AssignedToName
		}
		if view.AssignedToEmail != nil {
			resp.AssignedTo.Email = *view.AssignedToEmail
		}
		resp.AssignedTo.Phone = view.AssignedToPhone
	}
	return resp
}

// TicketMessageFromView maps a thread entry onto its response shape.
func TicketMessageFromView(view *domain.TicketMessageView) TicketMessageResponse {
	return TicketMessageResponse{
		ID:           view.ID,
		TicketID:     view.TicketID,
		AuthorUserID: view.AuthorUserID,
		AuthorName:   view.AuthorName,
		AuthorEmail:  view.AuthorEmail,
		Message:      view.Message,
		Status:       view.Status,
		CreatedAt:    view.CreatedAt,
	}
}
