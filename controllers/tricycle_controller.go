// File: /controllers/tricycle_controller.go
package controllers

import (
	"context"
	"fmt"
	"net/http"
	"time"
	"tricycle-api/errs"
	"tricycle-api/models"
	"tricycle-api/services"
	"tricycle-api/utils"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/rs/zerolog"
)

const (
	OperationSave   = "save"
	OperationGet    = "get"
	OperationUpdate = "update"
	OperationDelete = "delete"
)

// InvocationRecorder receives the outcome of every handler call. kind is
// empty when the call succeeded.
type InvocationRecorder interface {
	ObserveInvocation(operation string, status int, kind string, elapsed time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) ObserveInvocation(string, int, string, time.Duration) {}

// TricycleController exposes the four Lambda handlers. Each method returns a
// nil error; every outcome, including failures, is a response.
type TricycleController struct {
	service  *services.TricycleService
	log      zerolog.Logger
	recorder InvocationRecorder
}

func NewTricycleController(service *services.TricycleService, log zerolog.Logger, recorder InvocationRecorder) *TricycleController {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &TricycleController{
		service:  service,
		log:      log.With().Str("component", "tricycle_controller").Logger(),
		recorder: recorder,
	}
}

func (tc *TricycleController) SaveTricycle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return tc.handle(ctx, req, OperationSave, "inserting the tricycle", func() (events.APIGatewayProxyResponse, error) {
		payload, err := utils.DecodePayload(req.Body)
		if err != nil {
			return events.APIGatewayProxyResponse{}, err
		}

		tricycle, err := tc.service.CreateTricycle(ctx, payload)
		if err != nil {
			return events.APIGatewayProxyResponse{}, err
		}

		return utils.SendMessage(http.StatusOK, fmt.Sprintf("Tricycle %s %s saved successfully", tricycle.Brand, tricycle.Model)), nil
	})
}

func (tc *TricycleController) GetTricycles(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return tc.handle(ctx, req, OperationGet, "getting the tricycles", func() (events.APIGatewayProxyResponse, error) {
		tricycles, err := tc.service.GetTricycles(ctx)
		if err != nil {
			return events.APIGatewayProxyResponse{}, err
		}

		if len(tricycles) == 0 {
			return utils.SendMessage(http.StatusNoContent, "No tricycles found"), nil
		}
		return utils.SendJSON(http.StatusOK, tricycles), nil
	})
}

func (tc *TricycleController) UpdateTricycle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return tc.handle(ctx, req, OperationUpdate, "updating the tricycle", func() (events.APIGatewayProxyResponse, error) {
		payload, err := utils.DecodePayload(req.Body)
		if err != nil {
			return events.APIGatewayProxyResponse{}, err
		}

		tricycle, err := tc.service.UpdateTricycle(ctx, payload)
		if err != nil {
			return events.APIGatewayProxyResponse{}, err
		}

		return utils.SendMessage(http.StatusOK, fmt.Sprintf("Tricycle %s %s updated successfully", tricycle.Brand, tricycle.Model)), nil
	})
}

func (tc *TricycleController) DeleteTricycle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return tc.handle(ctx, req, OperationDelete, "deleting the tricycle", func() (events.APIGatewayProxyResponse, error) {
		payload, err := utils.DecodePayload(req.Body)
		if err != nil {
			return events.APIGatewayProxyResponse{}, err
		}

		if err := tc.service.DeleteTricycle(ctx, payload); err != nil {
			return events.APIGatewayProxyResponse{}, err
		}

		return utils.SendMessage(http.StatusOK, "Tricycle deleted successfully"), nil
	})
}

// handle turns an error from run into a formatted response, then logs and
// records the outcome.
func (tc *TricycleController) handle(
	ctx context.Context,
	req events.APIGatewayProxyRequest,
	operation, action string,
	run func() (events.APIGatewayProxyResponse, error),
) (events.APIGatewayProxyResponse, error) {
	start := time.Now()

	resp, err := run()
	kind := ""
	if err != nil {
		kind = errs.KindOf(err).String()
		resp = utils.SendError(err, action)
	}
	elapsed := time.Since(start)

	var event *zerolog.Event
	switch {
	case err == nil:
		event = tc.log.Info()
	case errs.KindOf(err) == errs.KindInfrastructure:
		event = tc.log.Error().Err(err)
	default:
		event = tc.log.Warn().Err(err)
	}
	event.
		Str("operation", operation).
		Str("request_id", requestID(ctx, req)).
		Int("status", resp.StatusCode).
		Str("kind", kind).
		Dur("elapsed", elapsed).
		Msg("handled " + models.TricycleTable + " request")

	tc.recorder.ObserveInvocation(operation, resp.StatusCode, kind, elapsed)
	return resp, nil
}

func requestID(ctx context.Context, req events.APIGatewayProxyRequest) string {
	if lc, ok := lambdacontext.FromContext(ctx); ok && lc.AwsRequestID != "" {
		return lc.AwsRequestID
	}
	return req.RequestContext.RequestID
}
