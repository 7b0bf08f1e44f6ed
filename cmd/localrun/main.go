// Command localrun invokes the handler against an S3 event JSON file
// outside Lambda, using real AWS clients. Configuration comes from the
// environment or a .env file in the working directory:
//
//	go run ./cmd/localrun -event event.json
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/arjunsth/image-transform-lambda/internal/catalog"
	"github.com/arjunsth/image-transform-lambda/internal/config"
	"github.com/arjunsth/image-transform-lambda/internal/handler"
	"github.com/arjunsth/image-transform-lambda/internal/storage"
)

func main() {
	eventPath := flag.String("event", "event.json", "path to an S3 event JSON file")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	raw, err := os.ReadFile(*eventPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *eventPath).Msg("failed to read event file")
	}

	var event events.S3Event
	if err := json.Unmarshal(raw, &event); err != nil {
		log.Fatal().Err(err).Msg("failed to parse event file")
	}

	sess, err := session.NewSession()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create AWS session")
	}

	h := handler.New(
		cfg,
		storage.NewS3Store(s3.New(sess)),
		catalog.New(dynamodb.New(sess), cfg.TableName),
		log.Logger,
	)

	resp, err := h.Handle(context.Background(), event)
	if err != nil {
		log.Fatal().Err(err).Msg("processing failed")
	}
	log.Info().Int("status_code", resp.StatusCode).Msg(resp.Body)
}
