package main

import (
	"context"
	"log"
	"os"
	"strings"

	"github.com/playmatatu/ballpark/internal/admin"
	"github.com/playmatatu/ballpark/internal/config"
	"github.com/playmatatu/ballpark/internal/database"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	db, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	phone := os.Getenv("ADMIN_PHONE")
	if phone == "" {
		phone = "256700000000"
		log.Printf("Using default admin phone: %s", phone)
	}

	adminToken := os.Getenv("ADMIN_TOKEN")
	if adminToken == "" {
		adminToken = "change-me-in-production"
		log.Printf("WARNING: Using default admin token. Set ADMIN_TOKEN env var in production!")
	}

	displayName := os.Getenv("ADMIN_NAME")
	if displayName == "" {
		displayName = "Commissioner"
	}
	roles := []string{"super_admin"}

	// Empty = allow from any IP
	var allowedIPs []string
	if v := os.Getenv("ADMIN_ALLOWED_IPS"); v != "" {
		for _, ip := range strings.Split(v, ",") {
			if ip = strings.TrimSpace(ip); ip != "" {
				allowedIPs = append(allowedIPs, ip)
			}
		}
	}

	if err := admin.CreateAdminAccount(ctx, db, phone, displayName, adminToken, roles, allowedIPs); err != nil {
		log.Fatalf("Failed to create admin account: %v", err)
	}

	log.Printf("✓ Admin account created/updated successfully")
	log.Printf("  Phone: %s", phone)
	log.Printf("  Display Name: %s", displayName)
	log.Printf("  Roles: %v", roles)
	log.Printf("  Allowed IPs: %v", allowedIPs)
	log.Println("\nSend X-Admin-Phone and X-Admin-Token headers to /api/v1/admin/*")
}
