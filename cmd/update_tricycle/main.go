// File: /cmd/update_tricycle/main.go
package main

import (
	"context"
	"tricycle-api/app"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/rs/zerolog/log"
)

func main() {
	a, err := app.New(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start update_tricycle")
	}

	lambda.Start(a.Controller(nil).UpdateTricycle)
}
