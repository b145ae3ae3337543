package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/11JOB/11JOB-frontend/cmd/gateway/commands"
)

// @title 11JOB Gateway API
// @version 1.0
// @description Job application tracking gateway: schedules, job postings and portfolio backed by the 11JOB service

// @contact.name 11JOB
// @contact.url https://github.com/11JOB/11JOB-frontend

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	rootCmd := &cobra.Command{
		Use:   "elevenjob",
		Short: "11JOB gateway server",
		Long:  `Gateway for the 11JOB job application tracker: serves the schedule list, edit sessions, job posting search and portfolio against the 11JOB backend.`,
	}

	// Add commands
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewLoginCommand())
	rootCmd.AddCommand(commands.NewLogoutCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
