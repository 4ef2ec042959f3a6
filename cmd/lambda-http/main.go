package main

// Build the Lambda handler binary:
//   GOOS=linux GOARCH=arm64 CGO_ENABLED=0 go build -o bootstrap ./cmd/lambda-http

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"

	"docqa-backend/internal/bootstrap"
	"docqa-backend/internal/shared/config"
	"docqa-backend/internal/shared/telemetry"
)

const unavailableMessage = "Document service unavailable"

// proxy builds the router on first use and keeps it for warm invocations.
// A failed build is retried on the next invocation.
type proxy struct {
	build func() (*gin.Engine, error)

	mu      sync.Mutex
	adapter *ginadapter.GinLambdaV2
}

func (p *proxy) router() (*ginadapter.GinLambdaV2, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.adapter != nil {
		return p.adapter, nil
	}
	r, err := p.build()
	if err != nil {
		return nil, err
	}
	p.adapter = ginadapter.NewV2(r)
	return p.adapter, nil
}

func (p *proxy) Handle(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	adapter, err := p.router()
	if err != nil {
		telemetry.Error("lambda.bootstrap_failed", map[string]any{
			"error":      err.Error(),
			"path":       req.RawPath,
			"request_id": req.RequestContext.RequestID,
		})
		return errorResponse(http.StatusServiceUnavailable, unavailableMessage), nil
	}
	return adapter.ProxyWithContext(ctx, req)
}

// errorResponse mirrors the router's single-field error body.
func errorResponse(status int, message string) events.APIGatewayV2HTTPResponse {
	body, _ := json.Marshal(gin.H{"error": message})
	return events.APIGatewayV2HTTPResponse{
		StatusCode: status,
		Body:       string(body),
		Headers:    map[string]string{"Content-Type": "application/json; charset=utf-8"},
	}
}

func buildRouter() (*gin.Engine, error) {
	app, err := bootstrap.Build(config.Load())
	if err != nil {
		return nil, err
	}
	return app.Router, nil
}

func main() {
	p := &proxy{build: buildRouter}
	lambda.Start(p.Handle)
}
