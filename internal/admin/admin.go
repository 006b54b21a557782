package admin

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/playmatatu/ballpark/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUnknownAdmin  = errors.New("admin account not found")
	ErrInvalidToken  = errors.New("invalid admin token")
	ErrIPNotAllowed  = errors.New("address not allowed for this admin")
	ErrNoAuditWriter = errors.New("no database for audit log")
)

// GetAdminAccount retrieves an admin account by phone
func GetAdminAccount(ctx context.Context, db *sqlx.DB, phone string) (*models.AdminAccount, error) {
	var acc models.AdminAccount
	err := db.GetContext(ctx, &acc, `SELECT phone, display_name, token_hash, roles, allowed_ips, created_at, updated_at FROM admin_accounts WHERE phone=$1`, phone)
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

// HashToken bcrypt-hashes an admin token for storage.
func HashToken(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash token: %w", err)
	}
	return string(hashed), nil
}

// VerifyToken checks a plain token against its stored hash.
func VerifyToken(hashedToken, plainToken string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedToken), []byte(plainToken)) == nil
}

// IPAllowed reports whether ip may use an account. An empty list allows any
// address.
func IPAllowed(acc *models.AdminAccount, ip string) bool {
	if len(acc.AllowedIPs) == 0 {
		return true
	}
	for _, allowed := range acc.AllowedIPs {
		if allowed == ip {
			return true
		}
	}
	return false
}

// CreateAdminAccount creates or replaces an admin account (used for seeding).
func CreateAdminAccount(ctx context.Context, db *sqlx.DB, phone, displayName, plainToken string, roles, allowedIPs []string) error {
	hashed, err := HashToken(plainToken)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO admin_accounts (phone, display_name, token_hash, roles, allowed_ips, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		ON CONFLICT (phone) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			token_hash = EXCLUDED.token_hash,
			roles = EXCLUDED.roles,
			allowed_ips = EXCLUDED.allowed_ips,
			updated_at = NOW()
	`, phone, displayName, hashed, pq.Array(roles), pq.Array(allowedIPs))
	return err
}

// Authenticate validates a phone and token pair coming from ip.
func Authenticate(ctx context.Context, db *sqlx.DB, phone, token, ip string) (*models.AdminAccount, error) {
	acc, err := GetAdminAccount(ctx, db, phone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Printf("[ADMIN] No admin account found for phone: %s", phone)
			return nil, ErrUnknownAdmin
		}
		log.Printf("[ADMIN] Database error: %v", err)
		return nil, fmt.Errorf("database error: %w", err)
	}

	if !VerifyToken(acc.TokenHash, token) {
		log.Printf("[ADMIN] Token verification failed for phone: %s", phone)
		return nil, ErrInvalidToken
	}
	if !IPAllowed(acc, ip) {
		log.Printf("[ADMIN] %s rejected from %s", phone, ip)
		return nil, ErrIPNotAllowed
	}
	return acc, nil
}

// LogAdminAction records an admin action in the audit log
func LogAdminAction(ctx context.Context, db *sqlx.DB, adminPhone, ip, route, action string, details map[string]interface{}, success bool) error {
	if db == nil {
		return ErrNoAuditWriter
	}
	detailsJSON, err := json.Marshal(details)
	if err != nil {
		log.Printf("[ADMIN] Failed to marshal audit details: %v", err)
		detailsJSON = []byte("{}")
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO admin_audit (admin_phone, ip, route, action, details, success, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`, adminPhone, ip, route, action, string(detailsJSON), success)
	if err != nil {
		log.Printf("[ADMIN] Failed to log admin action: %v", err)
	}
	return err
}

// GetAdminAuditLogs retrieves recent audit entries, optionally for one admin.
func GetAdminAuditLogs(ctx context.Context, db *sqlx.DB, phone string, limit, offset int) ([]models.AdminAudit, error) {
	var logs []models.AdminAudit
	err := db.SelectContext(ctx, &logs, `
		SELECT id, admin_phone, ip, route, action, details, success, created_at
		FROM admin_audit
		WHERE ($1 = '' OR admin_phone = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, phone, limit, offset)
	return logs, err
}
