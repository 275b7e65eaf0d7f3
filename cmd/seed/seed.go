package main

import (
	"context"
	"fmt"
	"log"

	"go.uber.org/zap"

	"github.com/kortix-ai/agent-platform-api/internal/agent"
	"github.com/kortix-ai/agent-platform-api/internal/registry"
	"github.com/kortix-ai/agent-platform-api/internal/store/cache"
	"github.com/kortix-ai/agent-platform-api/internal/store/sqlite"
)

const demoAccount = "acct-demo"

func main() {
	repo, err := sqlite.NewSQLiteStorage("agents.db")
	if err != nil {
		log.Fatal(err)
	}
	defer repo.Close()

	svc := agent.NewService(zap.NewNop(), repo, registry.Default(), cache.NewMemoryCache())
	ctx := context.Background()

	samples := []agent.Config{
		{
			Name:         "Researcher",
			Description:  "Web research and summarization",
			SystemPrompt: "You are a meticulous research assistant.",
			Tags:         []string{"research"},
		},
		{
			Name:         "Coder",
			Description:  "Code generation and shell work",
			SystemPrompt: "You are a senior software engineer.",
			Model:        "gpt-5", // discarded; every agent runs the platform model
			Tags:         []string{"engineering"},
			IsDefault:    true,
		},
	}

	for _, cfg := range samples {
		created, err := svc.Create(ctx, demoAccount, "tier_99", cfg)
		if err != nil {
			log.Fatalf("seeding %q: %v", cfg.Name, err)
		}
		fmt.Printf("Created agent %s (%s) on model %s\n", created.Config.Name, created.ID, created.Config.Model)
	}

	fmt.Printf("\nSuccessfully seeded database for account %s\n", demoAccount)
}
