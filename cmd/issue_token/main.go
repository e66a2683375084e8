package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/SscSPs/reconciliation_engine/internal/platform/config"
	"github.com/SscSPs/reconciliation_engine/internal/utils"
)

// Mints credentials for the API: a bearer token for an operator, or a fresh key for a
// machine client to add to API_KEYS.
func main() {
	subject := flag.String("subject", "", "User id the bearer token is issued to")
	role := flag.String("role", utils.RoleFinance, "Role of the bearer token: finance or viewer")
	ttl := flag.Duration("ttl", 24*time.Hour, "Lifetime of the bearer token")
	apiClient := flag.String("api-client", "", "Generate an API key for this machine client instead of a token")
	flag.Parse()

	if *apiClient != "" {
		key, err := utils.GenerateAPIKey()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Printf("%s:%s\n", strings.TrimSpace(*apiClient), key)
		return
	}

	if strings.TrimSpace(*subject) == "" {
		fmt.Fprintln(os.Stderr, "--subject or --api-client is required")
		os.Exit(1)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}

	token, err := utils.GenerateJWT(strings.TrimSpace(*subject), *role, cfg.JWTSecret, *ttl)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to sign token:", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
