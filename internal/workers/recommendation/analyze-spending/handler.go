// internal/workers/recommendation/analyze-spending/handler.go
package analyzespending

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	cerrors "cardmatch-workers/internal/common/errors"
	"cardmatch-workers/internal/common/logger"
	"cardmatch-workers/internal/common/metrics"
	"cardmatch-workers/internal/insights"
	"cardmatch-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "analyze-spending"
)

// ProfileSource loads the stored profile when the payload carries only a
// user ID; purchases come from the linked bank account stored with it.
type ProfileSource interface {
	Get(ctx context.Context, userID string) (*models.UserProfile, error)
}

type Handler struct {
	config   *Config
	profiles ProfileSource
	logger   logger.Logger
}

func NewHandler(config *Config, profiles ProfileSource, log logger.Logger) *Handler {
	return &Handler{
		config:   config,
		profiles: profiles,
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
		h.failJob(client, job, cerrors.NewSpendingAnalysisFailedError(err.Error()))
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	purchases := input.Purchases
	if len(purchases) == 0 && input.UserID != "" {
		profile, err := h.profiles.Get(ctx, input.UserID)
		if err != nil {
			h.logger.Warn("failed to load profile for spending analysis", map[string]interface{}{
				"userId": input.UserID,
				"error":  err.Error(),
			})
		} else {
			purchases = profile.Purchases
		}
	}

	spendingProfile := insights.AnalyzePurchases(purchases)

	h.logger.Info("spending analyzed", map[string]interface{}{
		"userId":     input.UserID,
		"purchases":  len(purchases),
		"categories": len(spendingProfile.Categories),
		"totalSpent": spendingProfile.TotalSpent,
	})

	return &Output{
		SpendingProfile: spendingProfile,
		Insights:        insights.SpendingInsights(spendingProfile),
	}, nil
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
