package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/alirazi1992/Update3-Ticketing/internal/auth"
	"github.com/alirazi1992/Update3-Ticketing/internal/domain"
	"github.com/alirazi1992/Update3-Ticketing/internal/repository"
)

// SeedDependencies bundles what the seeder writes through.
type SeedDependencies struct {
	Users         repository.UserRepository
	Categories    repository.CategoryRepository
	Tickets       repository.TicketRepository
	Messages      repository.TicketMessageRepository
	Notifications repository.NotificationRepository
	BcryptCost    int
	Logger        *zap.Logger
}

type userSeed struct {
	FullName   string
	Email      string
	Role       domain.Role
	Password   string
	Phone      string
	Department string
}

type categorySeed struct {
	Name        string
	Description string
	Subs        []string
}

// Seed inserts baseline users and categories when they are missing, keyed
// by email and name so repeated startups are safe. Sample tickets, thread
// messages and notifications are only written into an empty ticket table.
func Seed(ctx context.Context, deps SeedDependencies) error {
	userSeeds := []userSeed{
		{FullName: "Admin User", Email: "admin@test.com", Role: domain.RoleAdmin, Password: "Admin123!", Phone: "+989000000000", Department: "IT"},
		{FullName: "Tech One", Email: "tech1@test.com", Role: domain.RoleTechnician, Password: "Tech123!", Phone: "+989000000001", Department: "Field Support"},
		{FullName: "Tech Two", Email: "tech2@test.com", Role: domain.RoleTechnician, Password: "Tech123!", Phone: "+989000000002", Department: "Network"},
		{FullName: "Client One", Email: "client1@test.com", Role: domain.RoleClient, Password: "Client123!", Phone: "+989000000010", Department: "Finance"},
		{FullName: "Client Two", Email: "client2@test.com", Role: domain.RoleClient, Password: "Client123!", Phone: "+989000000011", Department: "Sales"},
	}

	users := make(map[string]*domain.User, len(userSeeds))
	for _, seed := range userSeeds {
		existing, err := deps.Users.GetByEmail(ctx, seed.Email)
		if err == nil {
			users[seed.Email] = existing
			continue
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return err
		}

		hash, err := auth.HashPassword(seed.Password, deps.BcryptCost)
		if err != nil {
			return err
		}
		phone, department := seed.Phone, seed.Department
		user := &domain.User{
			ID:           uuid.NewString(),
			FullName:     seed.FullName,
			Email:        seed.Email,
			PasswordHash: hash,
			Role:         seed.Role,
			Phone:        &phone,
			Department:   &department,
			CreatedAt:    time.Now().UTC(),
		}
		if err := deps.Users.Create(ctx, user); err != nil {
			return err
		}
		users[seed.Email] = user
		deps.Logger.Info("seeded user", zap.String("email", seed.Email), zap.String("role", string(seed.Role)))
	}

	categorySeeds := []categorySeed{
		{Name: "Hardware", Description: "Laptops and peripherals", Subs: []string{"Computer Not Working", "Printer Issues", "Monitor Problems"}},
		{Name: "Software", Description: "OS and application issues", Subs: []string{"OS Issues", "Application Problems", "Software Installation"}},
		{Name: "Network", Description: "Connectivity and WiFi", Subs: []string{"Internet Connection", "WiFi Problems", "Network Drive"}},
		{Name: "Email", Description: "Mailbox and clients", Subs: []string{"Email Not Working", "Email Setup", "Email Sync"}},
		{Name: "Security", Description: "Passwords and threats", Subs: []string{"Virus / Malware", "Password Reset", "Security Incident"}},
		{Name: "Access", Description: "System access and permissions", Subs: []string{"System Access", "Permission Change", "New Account"}},
	}

	categories := make(map[string]*domain.Category, len(categorySeeds))
	for _, seed := range categorySeeds {
		existing, err := deps.Categories.GetByName(ctx, seed.Name)
		if err == nil {
			categories[seed.Name] = existing
			continue
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return err
		}

		now := time.Now().UTC()
		description := seed.Description
		category := &domain.Category{
			ID:          uuid.NewString(),
			Name:        seed.Name,
			Description: &description,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		for _, subName := range seed.Subs {
			category.Subcategories = append(category.Subcategories, domain.Subcategory{
				ID:         uuid.NewString(),
				CategoryID: category.ID,
				Name:       subName,
				CreatedAt:  now,
			})
		}
		if err := deps.Categories.Create(ctx, category); err != nil {
			return err
		}
		categories[seed.Name] = category
		deps.Logger.Info("seeded category", zap.String("name", seed.Name))
	}

	count, err := deps.Tickets.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	return seedSampleTickets(ctx, deps, users, categories)
}

func seedSampleTickets(ctx context.Context, deps SeedDependencies, users map[string]*domain.User, categories map[string]*domain.Category) error {
	subID := func(categoryName, subName string) *string {
		category := categories[categoryName]
		if category == nil {
			return nil
		}
		for i := range category.Subcategories {
			if category.Subcategories[i].Name == subName {
				return &category.Subcategories[i].ID
			}
		}
		return nil
	}
	userID := func(email string) string {
		if user := users[email]; user != nil {
			return user.ID
		}
		return ""
	}
	assignee := func(email string) *string {
		id := userID(email)
		return &id
	}

	now := time.Now().UTC()
	dueDate := now.Add(48 * time.Hour)

	tickets := []*domain.Ticket{
		{
			ID:               uuid.NewString(),
			Title:            "VPN not connecting",
			Description:      "Cannot connect to VPN on Windows 11",
			CategoryID:       categories["Network"].ID,
			SubcategoryID:    subID("Network", "Internet Connection"),
			Priority:         domain.TicketPriorityHigh,
			Status:           domain.TicketStatusNew,
			CreatedByUserID:  userID("client1@test.com"),
			AssignedToUserID: assignee("tech1@test.com"),
			CreatedAt:        now.Add(-48 * time.Hour),
			UpdatedAt:        now.Add(-48 * time.Hour),
		},
		{
			ID:               uuid.NewString(),
			Title:            "Printer jam on 3rd floor",
			Description:      "Paper jam keeps returning",
			CategoryID:       categories["Hardware"].ID,
			SubcategoryID:    subID("Hardware", "Printer Issues"),
			Priority:         domain.TicketPriorityMedium,
			Status:           domain.TicketStatusInProgress,
			CreatedByUserID:  userID("client2@test.com"),
			AssignedToUserID: assignee("tech2@test.com"),
			CreatedAt:        now.Add(-24 * time.Hour),
			UpdatedAt:        now.Add(-24 * time.Hour),
			DueDate:          &dueDate,
		},
		{
			ID:               uuid.NewString(),
			Title:            "Outlook keeps crashing",
			Description:      "Crashes when opening calendar",
			CategoryID:       categories["Software"].ID,
			SubcategoryID:    subID("Software", "Application Problems"),
			Priority:         domain.TicketPriorityCritical,
			Status:           domain.TicketStatusInProgress,
			CreatedByUserID:  userID("client1@test.com"),
			AssignedToUserID: assignee("tech1@test.com"),
			CreatedAt:        now.Add(-8 * time.Hour),
			UpdatedAt:        now.Add(-8 * time.Hour),
		},
		{
			ID:               uuid.NewString(),
			Title:            "Request new laptop",
			Description:      "Need new laptop for new hire",
			CategoryID:       categories["Hardware"].ID,
			SubcategoryID:    subID("Hardware", "Computer Not Working"),
			Priority:         domain.TicketPriorityLow,
			Status:           domain.TicketStatusWaitingForClient,
			CreatedByUserID:  userID("client2@test.com"),
			AssignedToUserID: assignee("tech2@test.com"),
			CreatedAt:        now.Add(-120 * time.Hour),
			UpdatedAt:        now.Add(-120 * time.Hour),
		},
		{
			ID:               uuid.NewString(),
			Title:            "WiFi drops in conference room",
			Description:      "Signal weak in conference area",
			CategoryID:       categories["Network"].ID,
			SubcategoryID:    subID("Network", "WiFi Problems"),
			Priority:         domain.TicketPriorityHigh,
			Status:           domain.TicketStatusResolved,
			CreatedByUserID:  userID("client2@test.com"),
			AssignedToUserID: assignee("tech1@test.com"),
			CreatedAt:        now.Add(-72 * time.Hour),
			UpdatedAt:        now.Add(-24 * time.Hour),
		},
	}
	for _, ticket := range tickets {
		if err := deps.Tickets.Create(ctx, ticket); err != nil {
			return err
		}
	}

	messages := []*domain.TicketMessage{
		{
			ID:           uuid.NewString(),
			TicketID:     tickets[0].ID,
			AuthorUserID: userID("client1@test.com"),
			Message:      "Issue started after update",
			Status:       domain.TicketStatusNew,
			CreatedAt:    now.Add(-48 * time.Hour),
		},
		{
			ID:           uuid.NewString(),
			TicketID:     tickets[0].ID,
			AuthorUserID: userID("tech1@test.com"),
			Message:      "Checking logs and VPN client version",
			Status:       domain.TicketStatusInProgress,
			CreatedAt:    now.Add(-24 * time.Hour),
		},
		{
			ID:           uuid.NewString(),
			TicketID:     tickets[2].ID,
			AuthorUserID: userID("tech1@test.com"),
			Message:      "Reinstalling Office to fix crash",
			Status:       domain.TicketStatusInProgress,
			CreatedAt:    now.Add(-6 * time.Hour),
		},
	}
	for _, message := range messages {
		if err := deps.Messages.Create(ctx, message); err != nil {
			return err
		}
	}

	notifications := []*domain.Notification{
		{
			ID:        uuid.NewString(),
			UserID:    userID("tech1@test.com"),
			Message:   "New ticket assigned: VPN not connecting",
			CreatedAt: now.Add(-48 * time.Hour),
		},
		{
			ID:        uuid.NewString(),
			UserID:    userID("client1@test.com"),
			Message:   "Technician replied to your ticket",
			CreatedAt: now.Add(-24 * time.Hour),
		},
	}
	for _, notification := range notifications {
		if err := deps.Notifications.Create(ctx, notification); err != nil {
			return err
		}
	}

	deps.Logger.Info("seeded sample tickets", zap.Int("tickets", len(tickets)))
	return nil
}
