package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"gharbazaar/internal/config"
	"gharbazaar/internal/db"
	"gharbazaar/internal/model"
	"gharbazaar/internal/repository"
)

type seedUser struct {
	name     string
	email    string
	password string
	role     string
}

type seedListing struct {
	ownerEmail   string
	title        string
	description  string
	propertyType string
	purpose      string
	price        string
	location     string
	area         string
	phone        string
}

var seedUsers = []seedUser{
	{name: "Admin", email: "admin@gharbazaar.com", password: "admin123", role: model.RoleAdmin},
	{name: "Sita Sharma", email: "sita@example.com", password: "password123", role: model.RoleUser},
	{name: "Ram Thapa", email: "ram@example.com", password: "password123", role: model.RoleUser},
}

var seedListings = []seedListing{
	{
		ownerEmail:   "sita@example.com",
		title:        "Sunny 2BHK apartment near Patan Durbar Square",
		description:  "South-facing apartment on the third floor with parking.",
		propertyType: "apartment",
		purpose:      "rent",
		price:        "35000",
		location:     "Patan, Lalitpur",
		area:         "900 sq. ft.",
		phone:        "+977-9841000001",
	},
	{
		ownerEmail:   "ram@example.com",
		title:        "Four-storey house on a 4 anna plot in Budhanilkantha",
		description:  "Quiet neighbourhood, bore water, paved road access.",
		propertyType: "house",
		purpose:      "sale",
		price:        "32500000",
		location:     "Budhanilkantha, Kathmandu",
		area:         "4 anna",
		phone:        "+977-9841000002",
	},
	{
		ownerEmail:   "ram@example.com",
		title:        "Commercial land facing the Araniko Highway",
		description:  "Suitable for a showroom or warehouse, wide frontage.",
		propertyType: "land",
		purpose:      "sale",
		price:        "18000000",
		location:     "Suryabinayak, Bhaktapur",
		area:         "8 anna",
		phone:        "+977-9841000002",
	},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Listing{},
		&model.Message{},
		&model.Favorite{},
		&model.Review{},
		&model.ContactSubmission{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	repos := repository.NewRepositories(gormDB)
	ctx := context.Background()

	users, err := upsertUsers(ctx, repos.Users)
	if err != nil {
		log.Fatalf("Failed to seed users: %v", err)
	}
	log.Printf("Seeded %d users", len(users))

	created, err := createListings(ctx, repos.Listings, users)
	if err != nil {
		log.Fatalf("Failed to seed listings: %v", err)
	}
	log.Printf("Seeded %d listings", created)

	log.Println("Seed completed successfully!")
	os.Exit(0)
}

// upsertUsers creates the fixture users, keeping existing rows untouched.
func upsertUsers(ctx context.Context, repo repository.UserRepository) (map[string]*model.User, error) {
	users := make(map[string]*model.User, len(seedUsers))
	for _, su := range seedUsers {
		existing, err := repo.FindByEmail(ctx, su.email)
		if err == nil {
			users[su.email] = existing
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("check user %s: %w", su.email, err)
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(su.password), 10)
		if err != nil {
			return nil, fmt.Errorf("hash password for %s: %w", su.email, err)
		}
		user := &model.User{
			Name:         su.name,
			Email:        su.email,
			PasswordHash: string(hashed),
			Role:         su.role,
		}
		if err := repo.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("create user %s: %w", su.email, err)
		}
		users[su.email] = user
	}
	return users, nil
}

// createListings inserts the fixture listings for users that have none yet.
func createListings(ctx context.Context, repo repository.ListingRepository, users map[string]*model.User) (int, error) {
	created := 0
	hadListings := make(map[uint]bool)
	for _, user := range users {
		existing, err := repo.ListByUser(ctx, user.ID)
		if err != nil {
			return 0, fmt.Errorf("list listings for %s: %w", user.Email, err)
		}
		hadListings[user.ID] = len(existing) > 0
	}

	for _, sl := range seedListings {
		owner, ok := users[sl.ownerEmail]
		if !ok || hadListings[owner.ID] {
			continue
		}

		price, err := decimal.NewFromString(sl.price)
		if err != nil {
			return created, fmt.Errorf("parse price for %q: %w", sl.title, err)
		}
		listing := &model.Listing{
			UserID:       owner.ID,
			Title:        sl.title,
			Description:  sl.description,
			PropertyType: sl.propertyType,
			Purpose:      sl.purpose,
			Price:        price,
			Location:     sl.location,
			Area:         sl.area,
			PhoneNumber:  sl.phone,
			Images:       model.ImageList{},
		}
		if err := repo.Create(ctx, listing); err != nil {
			return created, fmt.Errorf("create listing %q: %w", sl.title, err)
		}
		created++
	}
	return created, nil
}
