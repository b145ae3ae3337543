package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/11JOB/11JOB-frontend/internal/adapters/remote"
	"github.com/11JOB/11JOB-frontend/internal/application/services"
	"github.com/11JOB/11JOB-frontend/internal/infrastructure/config"
	"github.com/11JOB/11JOB-frontend/internal/infrastructure/logger"
	"github.com/11JOB/11JOB-frontend/internal/infrastructure/server"
	"github.com/11JOB/11JOB-frontend/internal/infrastructure/session"
	"github.com/11JOB/11JOB-frontend/internal/ports"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the gateway server",
		Long:  "Start the gateway server with all configured routes and middleware",
		Run: func(cmd *cobra.Command, args []string) {
			runServer()
		},
	}
}

// NewLoginCommand creates the login command. It authenticates against the
// backend and stores the token pair in the session file, so a subsequent
// serve run starts authenticated.
func NewLoginCommand() *cobra.Command {
	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the 11JOB backend",
		Run: func(cmd *cobra.Command, args []string) {
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")

			if email == "" || password == "" {
				log.Fatal("Email and password are required")
			}

			runLogin(email, password)
		},
	}

	loginCmd.Flags().String("email", "", "Account email (required)")
	loginCmd.Flags().String("password", "", "Account password (required)")
	return loginCmd
}

// NewLogoutCommand creates the logout command
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and clear the stored session",
		Run: func(cmd *cobra.Command, args []string) {
			runLogout()
		},
	}
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print gateway version",
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := config.Load()
			if err != nil {
				log.Fatalf("Failed to load configuration: %v", err)
			}
			fmt.Printf("%s %s\n", cfg.App.Name, cfg.App.Version)
		},
	}
}

func runServer() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Close()

	srv, err := server.New(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize server", "error", err)
	}

	appLogger.Info("Starting gateway server",
		"port", cfg.Server.Port,
		"environment", cfg.App.Environment,
		"backend", cfg.Remote.BaseURL,
	)

	go func() {
		if err := srv.Start(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil {
			appLogger.Info("Server stopped", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Graceful shutdown failed", "error", err)
	}
}

// sessionService builds the minimal stack a session command needs: no
// server, no metrics registry.
func sessionService() (*services.SessionService, *logger.Logger) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	sessions := session.New(cfg.Session.File)
	client, err := remote.New(cfg.Remote, sessions, nil, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to create backend client", "error", err)
	}

	return services.NewSessionService(remote.NewUserClient(client), sessions, appLogger), appLogger
}

func runLogin(email, password string) {
	svc, appLogger := sessionService()
	defer appLogger.Close()

	sess, err := svc.Login(context.Background(), ports.LoginRequest{Email: email, Password: password})
	if err != nil {
		log.Fatalf("Login failed: %v", err)
	}

	fmt.Printf("Logged in as %s\n", sess.Email)
}

func runLogout() {
	svc, appLogger := sessionService()
	defer appLogger.Close()

	if err := svc.Logout(context.Background()); err != nil {
		log.Fatalf("Logout failed: %v", err)
	}

	fmt.Println("Logged out")
}
