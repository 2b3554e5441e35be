package main

import (
	"fmt"
	"os"
	"strings"

	"plume/service"

	"github.com/joho/godotenv"
)

const cliVersion = "1.0.0"

func main() {
	// Optional .env for local development; real deployments use the
	// environment directly.
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		printHelp()
		os.Exit(1)
	}

	cmd := strings.ToLower(os.Args[1])
	switch cmd {
	case "help":
		printHelp()
	case "version":
		fmt.Printf("plume version %s\n", cliVersion)
	default:
		os.Exit(service.HandleCommand(os.Args[1:]))
	}
}

func printHelp() {
	helpText := `Usage: plume <command> [options]

Commands:
  help                           Display this help message.
  version                        Show version information.
  serve                          Run the blog service.
  init                           Initialize the database and seed default groups.
  clean                          Drop all data, including the page cache.
  backup                         Create a backup of the database.
  restore [file]                 Restore database from backup.
`
	fmt.Println(helpText)
}
