// Command hashpass prints a bcrypt hash suitable for ADMIN_PASSWORD_HASH.
//
//	go run ./cmd/hashpass 'new-password'
//	echo 'new-password' | go run ./cmd/hashpass
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/orchid-haven/orchid-backend/internal/utils"
)

func main() {
	password := ""
	switch {
	case len(os.Args) > 1:
		password = os.Args[1]
	case os.Getenv("ADMIN_PASSWORD") != "":
		password = os.Getenv("ADMIN_PASSWORD")
	default:
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			log.Fatal("Missing password: pass it as an argument, in ADMIN_PASSWORD or on stdin")
		}
		password = strings.TrimRight(line, "\r\n")
	}

	if password == "" {
		log.Fatal("Password must not be empty")
	}

	// Hash password using utils.HashPassword (bcrypt)
	hash, err := utils.HashPassword(password)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	fmt.Println(hash)
}
