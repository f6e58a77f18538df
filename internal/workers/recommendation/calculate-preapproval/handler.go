// internal/workers/recommendation/calculate-preapproval/handler.go
package calculatepreapproval

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	cerrors "cardmatch-workers/internal/common/errors"
	"cardmatch-workers/internal/common/logger"
	"cardmatch-workers/internal/common/metrics"
	"cardmatch-workers/internal/models"
	"cardmatch-workers/internal/preapproval"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "calculate-preapproval"
)

var (
	ErrNoProfile    = errors.New("PROFILE_NOT_FOUND")
	ErrCardNotFound = errors.New("CARD_NOT_FOUND")
)

type ProfileSource interface {
	Get(ctx context.Context, userID string) (*models.UserProfile, error)
}

type CatalogSource interface {
	GetAll(ctx context.Context) ([]models.CreditCard, error)
}

type Handler struct {
	config   *Config
	profiles ProfileSource
	catalog  CatalogSource
	logger   logger.Logger
}

func NewHandler(config *Config, profiles ProfileSource, catalog CatalogSource, log logger.Logger) *Handler {
	return &Handler{
		config:   config,
		profiles: profiles,
		catalog:  catalog,
		logger:   log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	jobStart := time.Now()
	defer func() {
		metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(jobStart).Seconds())
	}()

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, cerrors.NewParseError(fmt.Sprintf("parse input: %v", err)))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoProfile):
			h.failJob(client, job, cerrors.NewProfileNotFoundError(input.UserID))
		case errors.Is(err, ErrCardNotFound):
			h.failJob(client, job, cerrors.NewCardNotFoundError(input.CardID))
		default:
			h.failJob(client, job, cerrors.NewPreapprovalFailedError(err.Error()))
		}
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	profile := input.UserProfile
	if profile == nil {
		if input.UserID == "" {
			return nil, fmt.Errorf("%w: no profile or user id provided", ErrNoProfile)
		}
		var err error
		profile, err = h.profiles.Get(ctx, input.UserID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNoProfile, err)
		}
	}

	card := input.Card
	if card == nil {
		if input.CardID == "" {
			return nil, fmt.Errorf("%w: no card or card id provided", ErrCardNotFound)
		}
		var err error
		card, err = h.findCard(ctx, input.CardID)
		if err != nil {
			return nil, err
		}
	}

	result := preapproval.Calculate(profile, card)

	h.logger.Info("pre-approval calculated", map[string]interface{}{
		"userId":      input.UserID,
		"cardId":      card.ID,
		"probability": result.Probability,
		"confidence":  result.Confidence,
	})

	return &Output{
		CardID:              card.ID,
		ApprovalProbability: result.Probability,
		Confidence:          result.Confidence,
		Recommendation:      result.Recommendation,
		Factors:             result.Factors,
	}, nil
}

func (h *Handler) findCard(ctx context.Context, cardID string) (*models.CreditCard, error) {
	cards, err := h.catalog.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	for i := range cards {
		if cards[i].ID == cardID {
			return &cards[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrCardNotFound, cardID)
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	_, err = cmd.Send(context.Background())
	if err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, stdErr *cerrors.StandardError) {
	bpmnErr := cerrors.FromStandardError(stdErr, int(job.Retries))
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, bpmnErr.Code).Inc()

	fields := bpmnErr.ToErrorVariables()
	fields["jobKey"] = job.Key
	h.logger.Error("job failed", fields)

	_, err := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(bpmnErr.Code).
		ErrorMessage(bpmnErr.Message).
		Send(context.Background())
	if err != nil {
		h.logger.Error("failed to throw error", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
