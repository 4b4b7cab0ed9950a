package database

import (
	"fmt"

	"github.com/portfolio-space/portfolio/internal/models"
	"gorm.io/gorm"
)

// SeedResult counts the rows inserted by Seed.
type SeedResult struct {
	Projects int
	Skills   int
}

// Seed inserts the default projects and skills into tables that are still empty,
// all in one transaction. Non-empty tables are left untouched.
func Seed(db *gorm.DB) (SeedResult, error) {
	var res SeedResult
	err := db.Transaction(func(tx *gorm.DB) error {
		n, err := seedIfEmpty(tx, SeedProjects())
		if err != nil {
			return fmt.Errorf("projects: %w", err)
		}
		res.Projects = n

		n, err = seedIfEmpty(tx, SeedSkills())
		if err != nil {
			return fmt.Errorf("skills: %w", err)
		}
		res.Skills = n
		return nil
	})
	if err != nil {
		return SeedResult{}, err
	}
	return res, nil
}

func seedIfEmpty[T any](tx *gorm.DB, rows []T) (int, error) {
	var count int64
	if err := tx.Model(new(T)).Count(&count).Error; err != nil {
		return 0, err
	}
	if count > 0 || len(rows) == 0 {
		return 0, nil
	}
	if err := tx.CreateInBatches(rows, len(rows)).Error; err != nil {
		return 0, err
	}
	return len(rows), nil
}

// SeedProjects returns the default project rows.
func SeedProjects() []models.Project {
	project := func(name, description, technologies string) models.Project {
		return models.Project{Name: name, Description: &description, Technologies: &technologies}
	}
	return []models.Project{
		project("E-Commerce Platform", "Full-stack e-commerce solution with payment integration", "React, Node.js, MongoDB, Stripe"),
		project("Cloud Infrastructure Automation", "Automated AWS infrastructure deployment using Terraform", "Terraform, AWS, Python, CI/CD"),
		project("Real-time Chat Application", "Scalable chat app with WebSocket support", "Socket.io, Express, Redis, React"),
		project("Machine Learning Pipeline", "End-to-end ML pipeline for predictive analytics", "Python, TensorFlow, Docker, Kubernetes"),
	}
}

// SeedSkills returns the default skill rows.
func SeedSkills() []models.Skill {
	skill := func(name, category string) models.Skill {
		return models.Skill{Name: name, Category: &category}
	}
	return []models.Skill{
		skill("Python", "Backend"),
		skill("JavaScript", "Frontend"),
		skill("AWS", "Cloud"),
		skill("Terraform", "IaC"),
		skill("Docker", "DevOps"),
		skill("Kubernetes", "DevOps"),
		skill("React", "Frontend"),
		skill("Flask", "Backend"),
		skill("MySQL", "Database"),
		skill("MongoDB", "Database"),
		skill("Git", "Version Control"),
		skill("CI/CD", "DevOps"),
	}
}
