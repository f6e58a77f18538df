// internal/workers/recommendation/generate-roadmap/handler.go
package generateroadmap

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
	"cardmatch-workers/internal/roadmap"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "generate-roadmap"
)

var (
	ErrNoProfile    = errors.New("PROFILE_NOT_FOUND")
	ErrNoMilestones = errors.New("no milestones provided")
)

type ProfileSource interface {
	Get(ctx context.Context, userID string) (*models.UserProfile, error)
}

// RoadmapGenerator selects milestones for a profile.
type RoadmapGenerator interface {
	Generate(ctx context.Context, user *models.UserProfile, library []roadmap.Milestone) []roadmap.Milestone
}

type Handler struct {
	config    *Config
	generator RoadmapGenerator
	profiles  ProfileSource
	logger    logger.Logger
}

func NewHandler(config *Config, generator RoadmapGenerator, profiles ProfileSource, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
		generator: generator,
		profiles:  profiles,
		logger:    log.WithFields(map[string]interface{}{"taskType": TaskType}),
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
		if errors.Is(err, ErrNoProfile) {
			h.failJob(client, job, cerrors.NewProfileNotFoundError(input.UserID))
		} else {
			h.failJob(client, job, cerrors.NewRoadmapGenerationFailedError(err.Error()))
		}
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if len(input.Milestones) == 0 {
		return nil, ErrNoMilestones
	}

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

	selected := h.generator.Generate(ctx, profile, input.Milestones)

	h.logger.Info("roadmap generated", map[string]interface{}{
		"userId":   input.UserID,
		"selected": len(selected),
	})

	return &Output{Milestones: selected}, nil
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
