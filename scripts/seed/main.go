// Command seed fills a development database with demo branches and FAQ
// entries and prints bearer tokens for one caller of each role.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"branchbook/config"
	"branchbook/database"
	branchRepo "branchbook/database/repository/branch"
	faqRepo "branchbook/database/repository/faq"
	"branchbook/database/seed"
	"branchbook/models"
	"branchbook/utils"
)

func main() {
	ttl := flag.Duration("token-ttl", 24*time.Hour, "lifetime of the printed tokens")
	flag.Parse()

	config.LoadConfig()
	database.InitDB()
	defer database.Disconnect(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	branches := branchRepo.NewMongoBranchRepo()
	n, err := seed.Branches(ctx, branches)
	if err != nil {
		log.Fatalf("Failed to seed branches: %v", err)
	}
	fmt.Printf("Inserted %d branches\n", n)

	n, err = seed.FAQs(ctx, faqRepo.NewMongoFAQRepo())
	if err != nil {
		log.Fatalf("Failed to seed faq entries: %v", err)
	}
	fmt.Printf("Inserted %d faq entries\n", n)

	list, err := branches.List(ctx, 1)
	if err != nil || len(list) == 0 {
		log.Fatalf("No branch available for the employee token: %v", err)
	}

	callers := []models.Identity{
		{UserID: 1, Role: models.RoleUser},
		{UserID: 2, Role: models.RoleEmployee, BranchID: list[0].ID},
		{UserID: 3, Role: models.RoleAdmin},
	}
	for _, id := range callers {
		token, err := utils.GenerateToken(id, *ttl)
		if err != nil {
			log.Fatalf("Failed to sign token for %s: %v", id.Role, err)
		}
		fmt.Printf("%-8s user=%d branch=%d\n  Bearer %s\n", id.Role, id.UserID, id.BranchID, token)
	}
}
