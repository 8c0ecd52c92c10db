package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/rs/zerolog"

	"github.com/yiqiao-yin/aws-deploy-bedrock-on-lambda/internal/handler"
	"github.com/yiqiao-yin/aws-deploy-bedrock-on-lambda/internal/titan"
)

func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	if lvl, err := zerolog.ParseLevel(os.Getenv("TITAND_LOG_LEVEL")); err == nil && lvl != zerolog.NoLevel {
		logger = logger.Level(lvl)
	}

	// Region and credentials come from the Lambda execution environment;
	// the SDK default chain picks them up.
	client, err := titan.NewFromConfig(context.Background(), os.Getenv("AWS_REGION"), os.Getenv("TITAND_MODEL_ID"))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build bedrock client")
	}

	lambda.Start(handler.New(client, logger).Handle)
}
