package dialogflow

import (
	"context"

	"homestay/config"

	dialogflow "cloud.google.com/go/dialogflow/apiv2"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// New builds the Dialogflow sessions client from its own service-account
// credentials. The classifier credentials are independent from the record
// store credentials.
func New(config *config.Config) *dialogflow.SessionsClient {
	ctx := context.Background()

	client, err := dialogflow.NewSessionsClient(ctx,
		option.WithCredentialsFile(config.Classifier.CredentialsFile),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Dialogflow sessions client")
	}

	log.Info().
		Str("project", config.Classifier.ProjectID).
		Msg("Connected to Dialogflow")

	return client
}
