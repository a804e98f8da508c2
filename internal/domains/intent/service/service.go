package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/classifier_mock.go -package=mocks

import (
	"context"
	"fmt"

	"homestay/config"
	"homestay/infras/otel"
	"homestay/internal/domains/intent/model"
	"homestay/shared/constant"
	"homestay/shared/failure"

	dialogflow "cloud.google.com/go/dialogflow/apiv2"
	"cloud.google.com/go/dialogflow/apiv2/dialogflowpb"
	"github.com/rs/zerolog/log"
)

// Classifier sends free text to the external intent classifier. The session
// identifier keeps the classifier-side conversation context stable across
// calls from the same sender, so callers pass the correlation key for it.
type Classifier interface {
	Detect(ctx context.Context, sessionID, text string) (model.Result, error)
}

type serviceImpl struct {
	sessions *dialogflow.SessionsClient
	cfg      *config.Config
	otel     otel.Otel
}

func New(sessions *dialogflow.SessionsClient, cfg *config.Config, otel otel.Otel) Classifier {
	return &serviceImpl{
		sessions: sessions,
		cfg:      cfg,
		otel:     otel,
	}
}

func (s *serviceImpl) Detect(ctx context.Context, sessionID, text string) (res model.Result, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".Detect")
	defer scope.End()
	defer scope.TraceIfError(err)

	session := fmt.Sprintf("projects/%s/agent/sessions/%s", s.cfg.Classifier.ProjectID, sessionID)

	resp, err := s.sessions.DetectIntent(ctx, &dialogflowpb.DetectIntentRequest{
		Session: session,
		QueryInput: &dialogflowpb.QueryInput{
			Input: &dialogflowpb.QueryInput_Text{
				Text: &dialogflowpb.TextInput{
					Text:         text,
					LanguageCode: s.cfg.Classifier.LanguageCode,
				},
			},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to detect intent")

		return res, failure.Unavailable("intent classifier unavailable") //nolint:wrapcheck
	}

	queryResult := resp.GetQueryResult()

	res = model.Result{
		Intent:          queryResult.GetIntent().GetDisplayName(),
		Slots:           model.SlotsFromProto(queryResult.GetParameters()),
		FulfillmentText: queryResult.GetFulfillmentText(),
	}

	scope.SetAttribute("intent.name", res.Intent)

	return res, nil
}
