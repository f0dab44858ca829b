// cmd/lambda/main.go
package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/rs/zerolog/log"

	"github.com/codr1/yeardots/internal/api/apiutil"
	"github.com/codr1/yeardots/internal/app"
	"github.com/codr1/yeardots/internal/config"
	"github.com/codr1/yeardots/internal/wallpaper"
)

type handler struct {
	service      *wallpaper.Service
	cacheControl string
}

// handle adapts an API Gateway proxy event. The PNG goes back base64
// encoded since proxy responses carry text bodies.
func (h *handler) handle(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	ctx = log.Logger.With().Str("request_id", event.RequestContext.RequestID).Logger().WithContext(ctx)
	params := wallpaper.Params{
		Day:   event.QueryStringParameters["day"],
		Theme: event.QueryStringParameters["theme"],
	}

	result, err := h.service.Generate(ctx, params)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("Failed to render wallpaper")
		return errorResponse(err), nil
	}

	headers := map[string]string{"Content-Type": "image/png"}
	if h.cacheControl != "" {
		headers["Cache-Control"] = h.cacheControl
	}
	return events.APIGatewayProxyResponse{
		StatusCode:      http.StatusOK,
		Headers:         headers,
		Body:            base64.StdEncoding.EncodeToString(result.PNG),
		IsBase64Encoded: true,
	}, nil
}

func errorResponse(err error) events.APIGatewayProxyResponse {
	body, marshalErr := json.Marshal(apiutil.ErrorResponse{Error: err.Error()})
	if marshalErr != nil {
		body = []byte(`{"error":"internal error"}`)
	}
	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusInternalServerError,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(body),
	}
}

func newHandler(cfg *config.Config) (*handler, error) {
	service, err := app.NewService(cfg)
	if err != nil {
		return nil, err
	}
	return &handler{service: service, cacheControl: cfg.Render.CacheControl}, nil
}

func main() {
	configPath := app.DefaultConfigPath
	if value, ok := os.LookupEnv("CONFIG_PATH"); ok {
		configPath = value
	}
	cfg, err := app.LoadConfig(configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	app.SetupLogger(cfg.App.Environment)

	h, err := newHandler(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize wallpaper service")
	}
	lambda.Start(h.handle)
}
