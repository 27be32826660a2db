package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"storehub/database"
	"storehub/internal/api/models"
	"storehub/internal/auth"
	"storehub/internal/config"
	"storehub/internal/logging"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// seedFile is the JSON shape consumed by the seeder. Passwords are given in
// plaintext in the file and hashed on insert.
type seedFile struct {
	Users  []seedUser  `json:"users"`
	Stores []seedStore `json:"stores"`
}

type seedUser struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Address  string `json:"address"`
	Role     string `json:"role"`
}

type seedStore struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Address    string `json:"address"`
	OwnerEmail string `json:"ownerEmail"`
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	path := "database/seed_data.json"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	data, err := readSeedFile(path)
	if err != nil {
		logger.Fatal("failed to read seed file", zap.String("path", path), zap.Error(err))
	}
	logger.Info("loaded seed file",
		zap.String("path", path),
		zap.Int("users", len(data.Users)),
		zap.Int("stores", len(data.Stores)))

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)

	ctx := context.Background()
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		userIDs, err := seedUsers(tx, data.Users)
		if err != nil {
			return err
		}
		logger.Info("seeded users", zap.Int("count", len(userIDs)))

		count, err := seedStores(tx, data.Stores, userIDs)
		if err != nil {
			return err
		}
		logger.Info("seeded stores", zap.Int("count", count))
		return nil
	})
	if err != nil {
		logger.Fatal("seeding failed", zap.Error(err))
	}

	logger.Info("seeding completed")
}

func readSeedFile(path string) (*seedFile, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer file.Close()

	var data seedFile
	if err := json.NewDecoder(file).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode seed file: %w", err)
	}
	return &data, nil
}

// seedUsers upserts users keyed on email and returns email → id for store
// ownership wiring.
func seedUsers(tx *gorm.DB, users []seedUser) (map[string]string, error) {
	ids := make(map[string]string, len(users))

	for _, u := range users {
		hashed, err := auth.HashPassword(u.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password for %s: %w", u.Email, err)
		}

		role := u.Role
		if role == "" {
			role = models.RoleUser
		}

		user := models.User{
			ID:       uuid.New().String(),
			Name:     u.Name,
			Email:    u.Email,
			Password: hashed,
			Address:  u.Address,
			Role:     role,
		}

		err = tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "address", "role"}),
		}).Create(&user).Error
		if err != nil {
			return nil, fmt.Errorf("failed to upsert user %s: %w", u.Email, err)
		}

		// Re-read the id in case an existing row won the conflict
		var stored models.User
		if err := tx.Where("email = ?", u.Email).First(&stored).Error; err != nil {
			return nil, fmt.Errorf("failed to read back user %s: %w", u.Email, err)
		}
		ids[u.Email] = stored.ID
	}

	return ids, nil
}

func seedStores(tx *gorm.DB, stores []seedStore, userIDs map[string]string) (int, error) {
	count := 0

	for _, s := range stores {
		store := models.Store{
			ID:      uuid.New().String(),
			Name:    s.Name,
			Email:   s.Email,
			Address: s.Address,
		}

		if s.OwnerEmail != "" {
			ownerID, ok := userIDs[s.OwnerEmail]
			if !ok {
				return count, fmt.Errorf("store %s references unknown owner %s", s.Name, s.OwnerEmail)
			}
			store.OwnerID = &ownerID
		}

		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "address", "owner_id"}),
		}).Create(&store).Error
		if err != nil {
			return count, fmt.Errorf("failed to upsert store %s: %w", s.Name, err)
		}
		count++
	}

	return count, nil
}
