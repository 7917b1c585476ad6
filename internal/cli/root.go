package cli

import (
	"log"
	"os"

	"ats/internal/app"
	"ats/internal/config"
	"ats/internal/domain/application"
	"ats/internal/usecase"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// botActorID identifies CLI-driven bot passes in logs.
var botActorID = uuid.MustParse("00000000-0000-0000-0000-00000000b07a")

func botActor() usecase.Actor {
	return usecase.Actor{UserID: botActorID, Role: application.RoleBot}
}

// openContainer loads configuration the same way the server does.
func openContainer() (*app.Container, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("env file not loaded: %v", err)
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return app.NewContainer(cfg, log.New(os.Stderr, "", log.LstdFlags))
}
