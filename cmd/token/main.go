// Command token signs an access token for local development, standing in for
// the external identity provider.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/cmlabs-hris/workspace-backend-go/internal/config"
	"github.com/cmlabs-hris/workspace-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/workspace-backend-go/internal/pkg/jwt"
)

func main() {
	var (
		uid   = flag.String("uid", "", "identity uid (required)")
		email = flag.String("email", "", "identity email")
		name  = flag.String("name", "", "display name")
		role  = flag.String("role", string(user.RoleEmployee), "MANAGING_DIRECTOR, PROJECT_MANAGER or EMPLOYEE")
	)
	flag.Parse()

	if *uid == "" {
		log.Fatal("-uid is required")
	}
	parsedRole, err := user.ParseRole(*role)
	if err != nil {
		log.Fatalf("invalid -role: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	svc := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	token, expiresAt, err := svc.GenerateAccessToken(user.Identity{
		UID:         *uid,
		Email:       *email,
		DisplayName: *name,
		Role:        parsedRole,
	})
	if err != nil {
		log.Fatalf("failed to sign token: %v", err)
	}

	fmt.Println(token)
	log.Printf("expires at %s", time.Unix(expiresAt, 0).Format(time.RFC3339))
}
