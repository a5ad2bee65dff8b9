package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"graphlit-chat/internal/config"
	"graphlit-chat/internal/graphql"
	"graphlit-chat/internal/service"
)

func main() {
	ctx := context.Background()
	reader := bufio.NewReader(os.Stdin)

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := zap.NewNop()
	if cfg.LogDevelopment {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	client := graphql.NewClient(cfg.GraphQLURL, &http.Client{Timeout: cfg.HTTPTimeout}, logger)
	chat := service.NewChatOrchestrator(
		logger,
		service.NewCredentialService(logger),
		service.NewConversationService(client, logger),
		service.NewFeedService(client, logger),
	)

	fmt.Println("===== Graphlit, Chat with Feed! =====")
	if cfg.HasCredentialInputs() {
		printOutcome(chat.GenerateCredential(cfg.JWTSecret, cfg.EnvironmentID, cfg.OrganizationID))
	} else {
		fmt.Println(dimStyle.Render("Look into App Settings in Graphlit to get info, then run /token."))
	}
	printHelp()

	if err := chatLoop(ctx, reader, chat); err != nil && err != io.EOF {
		log.Fatal(err)
	}
}

func chatLoop(ctx context.Context, reader *bufio.Reader, chat *service.ChatOrchestrator) error {
	for {
		fmt.Print("> ")
		text, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		text = strings.TrimRight(text, "\r\n")
		if strings.TrimSpace(text) == "" {
			continue
		}

		switch strings.ToLower(strings.TrimSpace(text)) {
		case "/exit", "/quit":
			fmt.Println("Bye.")
			return nil
		case "/help":
			printHelp()
		case "/token":
			fields, err := readFields(reader, "Secret Key: ", "Environment ID: ", "Organization ID: ")
			if err != nil {
				return err
			}
			printOutcome(chat.GenerateCredential(fields[0], fields[1], fields[2]))
		case "/feeds":
			out := chat.ListFeeds(ctx)
			printOutcome(out)
			if out.OK() {
				fmt.Println(renderFeeds(out.Feeds))
			}
		case "/feed":
			fields, err := readFields(reader, "Feed name: ", "Feed URI: ")
			if err != nil {
				return err
			}
			printOutcome(chat.CreateFeed(ctx, fields[0], fields[1]))
		case "/status":
			fmt.Println(renderStatus(chat, time.Now().UTC()))
		case "/history":
			for _, msg := range chat.Messages() {
				fmt.Println(renderMessage(msg))
			}
		default:
			out := chat.Submit(ctx, text)
			if out.OK() {
				msgs := chat.Messages()
				fmt.Println(renderMessage(msgs[len(msgs)-1]))
				continue
			}
			printOutcome(out)
		}
	}
}

// readFields pide cada valor en orden y corta ante el primer error de lectura.
func readFields(reader *bufio.Reader, prompts ...string) ([]string, error) {
	out := make([]string, 0, len(prompts))
	for _, prompt := range prompts {
		fmt.Print(prompt)
		line, err := reader.ReadString('\n')
		if err != nil {
			return nil, err
		}
		out = append(out, strings.TrimSpace(line))
	}
	return out, nil
}

func printOutcome(out service.Outcome) {
	if s := renderOutcome(out); s != "" {
		fmt.Println(s)
	}
}

func printHelp() {
	fmt.Println(dimStyle.Render("Commands: /token  /feeds  /feed  /status  /history  /help  /exit"))
}
