// Command hash-secret produces an argon2id hash of the operator secret
// for the MEDIAVAULT_ADMIN_SECRET_HASH environment variable, so the
// plaintext never has to live in the server's environment.
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/optionshub/mediavault-server/internal/auth"
)

func main() {
	var secret string

	if len(os.Args) > 1 {
		secret = os.Args[1]
	} else {
		fmt.Fprint(os.Stderr, "Operator secret: ")
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			log.Fatalf("Failed to read secret: %v", err)
		}
		secret = strings.TrimRight(line, "\r\n")
	}

	if secret == "" {
		log.Fatal("Secret must not be empty")
	}

	hash, err := auth.HashSecret(secret)
	if err != nil {
		log.Fatalf("Failed to hash secret: %v", err)
	}

	fmt.Println(hash)
}
