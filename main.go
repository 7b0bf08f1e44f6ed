package main

import (
	"github.com/aws/aws-lambda-go/lambda"
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
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// The Lambda runtime supplies AWS_REGION and credentials.
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

	lambda.Start(h.Handle)
}
