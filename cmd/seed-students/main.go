package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/examhall/exam-portal-backend/internal/config"
	"github.com/examhall/exam-portal-backend/internal/database"
	"github.com/examhall/exam-portal-backend/internal/logger"
	"github.com/examhall/exam-portal-backend/internal/model"
	"github.com/examhall/exam-portal-backend/internal/repository"
	"github.com/examhall/exam-portal-backend/internal/service"
)

// Seeds a batch of pre-approved student accounts for load testing and local
// development. All accounts share the password "password123".
func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	studentRepo := repository.NewStudentRepository(pool)
	authService := service.NewAuthService(cfg, nil)

	names := []string{
		"Aisha Khan", "Rohan Mehta", "Priya Sharma", "Arjun Patel", "Sneha Iyer",
		"Vikram Singh", "Ananya Rao", "Karan Joshi", "Divya Nair", "Rahul Verma",
		"Meera Pillai", "Aditya Kulkarni", "Pooja Desai", "Sanjay Gupta", "Nisha Reddy",
		"Amit Trivedi", "Kavya Menon", "Ravi Shastri", "Tanvi Bhatt", "Nikhil Saxena",
		"Isha Chawla", "Varun Malhotra", "Shreya Ghosh", "Manish Tiwari", "Ritika Jain",
		"Suresh Kumar", "Lakshmi Narayan", "Deepak Chopra", "Anjali Mathur", "Gaurav Sood",
		"Neha Kapoor", "Harish Bhandari", "Swati Kelkar", "Ajay Rathod", "Pallavi Shinde",
		"Mohit Agarwal", "Ramya Krishnan", "Siddharth Bose", "Tanya Sethi", "Vivek Anand",
		"Asmita Gokhale", "Rajesh Pawar", "Sonali Kadam", "Tejas Bhosale", "Uma Sundaram",
		"Yash Thakur", "Zoya Sheikh", "Pranav Hegde", "Madhuri Joshi", "Kunal Shah",
	}

	fmt.Printf("=== Seeding %d Students ===\n", len(names))

	hash, err := authService.HashPassword("password123")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to hash password")
	}

	created := 0
	for i, name := range names {
		prn := fmt.Sprintf("PRN2026%03d", i+1)
		email := fmt.Sprintf("%s%d@students.example.edu",
			strings.ToLower(strings.Split(name, " ")[0]), i+1)

		student := &model.Student{
			Name:         name,
			Email:        email,
			PRN:          prn,
			Status:       model.StudentStatusApproved,
			PasswordHash: hash,
		}

		if err := studentRepo.Create(ctx, student); err != nil {
			if errors.Is(err, repository.ErrDuplicateStudent) {
				fmt.Printf("Skipping %s (%s): already exists\n", name, prn)
				continue
			}
			log.Fatal().Err(err).Str("prn", prn).Msg("Failed to create student")
		}
		created++
	}

	fmt.Printf("Done. Created %d students (password: password123)\n", created)
}
