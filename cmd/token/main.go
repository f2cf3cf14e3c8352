// Command token mints a bearer token for a /solve client.
//
//	JWT_SECRET=... go run ./cmd/token -sub web-frontend -ttl 720h
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"math_solver/internal/app/config"
	jwtmw "math_solver/internal/platform/jwt"
)

func main() {
	sub := flag.String("sub", "", "client subject (required)")
	ttl := flag.Duration("ttl", 30*24*time.Hour, "token lifetime")
	flag.Parse()

	if err := config.LoadDotEnv(".env"); err != nil {
		log.Fatal(err)
	}
	secret := os.Getenv(jwtmw.EnvKeyJWTSecret)
	if secret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	token, err := jwtmw.NewGenerator(secret, *ttl).GenerateToken(*sub)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(token)
}
