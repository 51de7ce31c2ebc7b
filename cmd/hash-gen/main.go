package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"keephy.backend/pkg/crypto"
)

// minPasswordLength mirrors the signup validation rule
const minPasswordLength = 8

var (
	printfFn       = fmt.Printf
	generateHashFn = generateHash
	fatalfFn       = log.Fatalf
)

func resolvePassword(args []string) (string, error) {
	if len(args) == 0 || args[0] == "" {
		return "", errors.New("usage: hash-gen <password>")
	}
	if len(args[0]) < minPasswordLength {
		return "", fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}
	return args[0], nil
}

func generateHash(password string) (string, error) {
	return crypto.HashPassword(password)
}

// main prints a bcrypt hash suitable for the users.password column
func main() {
	password, err := resolvePassword(os.Args[1:])
	if err != nil {
		fatalfFn("%v", err)
		return
	}

	hash, err := generateHashFn(password)
	if err != nil {
		fatalfFn("Failed to hash password: %v", err)
		return
	}

	printfFn("Bcrypt Hash: %s\n", hash)
}
