// Package main is a development utility that prints fresh secrets for a local setup: a
// session encryption key, a session signing secret, and a bcrypt hash for the mock admin
// password. Paste the output into config.yaml or export the printed variables.
package main

import (
	"crypto/rand"
	"encoding/base64"
	"flag"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"

	"github.com/ngoconnect/ngoconnect/internal/crypto"
)

func main() {
	password := flag.String("admin-password", "", "Mock admin password to hash (random when empty)")
	flag.Parse()

	encryptionKey, err := crypto.GenerateKey()
	if err != nil {
		log.Fatal(err)
	}

	secretBytes := make([]byte, 48)
	if _, err := rand.Read(secretBytes); err != nil {
		log.Fatal(err)
	}
	signingSecret := base64.RawURLEncoding.EncodeToString(secretBytes)

	adminPassword := *password
	if adminPassword == "" {
		pw := make([]byte, 18)
		if _, err := rand.Read(pw); err != nil {
			log.Fatal(err)
		}
		adminPassword = base64.RawURLEncoding.EncodeToString(pw)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("==========================================================")
	fmt.Println("NGO Connect secrets")
	fmt.Println("==========================================================")
	fmt.Printf("\nexport NGOCONNECT_SESSION_ENCRYPTION_KEY=%s\n", encryptionKey)
	fmt.Printf("export NGOCONNECT_SESSION_SIGNING_SECRET=%s\n", signingSecret)
	fmt.Printf("export NGOCONNECT_MOCK_API_ADMIN_PASSWORD=%s\n", adminPassword)
	fmt.Println("\n==========================================================")
	fmt.Printf("Admin password bcrypt hash: %s\n", string(hash))
	fmt.Println("==========================================================")
}
