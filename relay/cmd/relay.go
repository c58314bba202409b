// Command-line chat frontend for the relay backend.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"relay/relay/client"
	"relay/relay/config"
	"relay/relay/utils/logging"

	"go.uber.org/zap"
)

func main() {
	logging.InitLogger()
	cfg := config.LoadConfig()

	stateDir := os.Getenv("RELAY_STATE_DIR")
	if stateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		stateDir = filepath.Join(home, ".relay")
	}

	state, err := client.LoadAuthState(stateDir)
	if err != nil {
		logging.ErrorLogger.Error("auth state load error", zap.Error(err))
	}
	token := os.Getenv("RELAY_TOKEN")
	if token == "" {
		token = state.Token
	}
	if token == "" {
		fmt.Println("No credential found. Set RELAY_TOKEN to a bearer token issued by your identity provider.")
		os.Exit(1)
	}
	if token != state.Token {
		if err := client.SaveAuthState(stateDir, client.AuthState{
			IsAuthenticated: true,
			Email:           state.Email,
			Token:           token,
		}); err != nil {
			logging.ErrorLogger.Error("auth state save error", zap.Error(err))
		}
	}

	baseURL := os.Getenv("RELAY_SERVER_URL")
	if baseURL == "" {
		baseURL = "http://localhost:" + cfg.Port
	}

	api := client.NewAPI(baseURL, func() string { return token })
	store := client.NewStore(api)

	sessionsPath := filepath.Join(stateDir, "sessions.bolt")
	if err := store.LoadSessions(sessionsPath); err != nil {
		logging.ErrorLogger.Error("session load error", zap.Error(err))
	}
	defer func() {
		if err := store.SaveSessions(sessionsPath); err != nil {
			logging.ErrorLogger.Error("session save error", zap.Error(err))
		}
	}()

	logging.AppLogger.Info("relay chat client started", zap.String("server", baseURL))

	fmt.Printf("\n💬 relay chat — connected to %s\n\n", baseURL)
	fmt.Println("Commands:")
	fmt.Println("  /new          start a new chat")
	fmt.Println("  /sessions     list chats")
	fmt.Println("  /switch <n>   switch to chat n")
	fmt.Println("  exit          quit")
	fmt.Println()

	ctx := context.Background()
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("you> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "exit" || line == "quit" {
			fmt.Println("👋 Goodbye!")
			break
		}
		if line == "" {
			continue
		}

		switch {
		case line == "/new":
			store.NewSession()
			fmt.Println("Started a new chat.")
			continue
		case line == "/sessions":
			for i, sess := range store.Sessions() {
				marker := " "
				if cur := store.CurrentSession(); cur != nil && cur.ID == sess.ID {
					marker = "*"
				}
				fmt.Printf("%s %2d. %s (%d messages)\n", marker, i+1, sess.Title, len(sess.Messages))
			}
			continue
		case strings.HasPrefix(line, "/switch "):
			n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, "/switch")))
			sessions := store.Sessions()
			if err != nil || n < 1 || n > len(sessions) {
				fmt.Println("Usage: /switch <n> (see /sessions)")
				continue
			}
			store.SetCurrent(sessions[n-1].ID)
			fmt.Printf("Switched to %q.\n", sessions[n-1].Title)
			continue
		}

		// One in-flight turn at a time; block until it settles.
		done := store.SendMessage(ctx, line)
		<-done

		if sess := store.CurrentSession(); sess != nil && len(sess.Messages) > 0 {
			last := sess.Messages[len(sess.Messages)-1]
			if last.Role == client.RoleAssistant {
				fmt.Printf("\nagent> %s\n\n", last.Content)
			}
		}
	}
}
