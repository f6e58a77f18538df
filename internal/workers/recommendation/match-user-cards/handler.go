// internal/workers/recommendation/match-user-cards/handler.go
package matchusercards

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	cerrors "cardmatch-workers/internal/common/errors"
	"cardmatch-workers/internal/common/logger"
	"cardmatch-workers/internal/common/metrics"
	"cardmatch-workers/internal/common/validation"
	"cardmatch-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "match-user-cards"
)

var (
	ErrNoProfile = errors.New("PROFILE_NOT_FOUND")
)

// inputSchema rejects payloads carrying neither a profile nor a user ID
// before the pipeline runs.
var inputSchema = validation.MustCompile(map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"userId":      map[string]interface{}{"type": "string"},
		"userProfile": map[string]interface{}{"type": "object"},
		"topN":        map[string]interface{}{"type": "integer", "minimum": 0},
	},
	"anyOf": []interface{}{
		map[string]interface{}{"required": []interface{}{"userId"}},
		map[string]interface{}{"required": []interface{}{"userProfile"}},
	},
})

// CardMatcher runs the recommendation pipeline for one profile.
type CardMatcher interface {
	Match(ctx context.Context, user *models.UserProfile, topN int) ([]models.RankedCandidate, error)
}

// ProfileSource loads stored profiles when the process carries only a user ID.
type ProfileSource interface {
	Get(ctx context.Context, userID string) (*models.UserProfile, error)
}

type Handler struct {
	config   *Config
	matcher  CardMatcher
	profiles ProfileSource
	logger   logger.Logger
}

func NewHandler(config *Config, matcher CardMatcher, profiles ProfileSource, log logger.Logger) *Handler {
	return &Handler{
		config:   config,
		matcher:  matcher,
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

	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(job.Variables), &raw); err != nil {
		h.failJob(client, job, cerrors.NewParseError(fmt.Sprintf("parse input: %v", err)))
		return
	}
	if result, err := validation.ValidateCompiled(inputSchema, raw); err != nil || !result.Valid {
		h.failJob(client, job, cerrors.NewParseError(validationMessage(result, err)))
		return
	}

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
			h.failJob(client, job, cerrors.NewMatchFailedError(err.Error()))
		}
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	profile := input.UserProfile
	if profile == nil {
		var err error
		profile, err = h.profiles.Get(ctx, input.UserID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNoProfile, err)
		}
	}

	topN := input.TopN
	if topN <= 0 {
		topN = h.config.DefaultTopN
	}

	start := time.Now()
	ranked, err := h.matcher.Match(ctx, profile, topN)
	if err != nil {
		return nil, err
	}

	output := &Output{
		RecommendationID: uuid.New().String(),
		Recommendations:  make([]Recommendation, len(ranked)),
	}
	if len(ranked) > 0 {
		output.Tier = string(ranked[0].Tier)
	}
	for i, r := range ranked {
		output.Recommendations[i] = Recommendation{
			CardID:         r.Card.ID,
			CardName:       r.Card.Name,
			Issuer:         r.Card.Issuer,
			Category:       r.Card.Category,
			AnnualFee:      r.Card.AnnualFee,
			RewardsType:    r.Card.RewardsType,
			Benefits:       r.Card.Benefits,
			ImageURL:       r.Card.ImageURL,
			ApplicationURL: r.Card.ApplicationURL,
			MatchScore:     r.DisplayScore,
			RawSimilarity:  r.RawSimilarity,
		}
	}

	h.logger.Info("recommendations generated", map[string]interface{}{
		"userId":     input.UserID,
		"tier":       output.Tier,
		"count":      len(output.Recommendations),
		"durationMs": time.Since(start).Milliseconds(),
	})

	return output, nil
}

func validationMessage(result *validation.ValidationResult, err error) string {
	if err != nil {
		return err.Error()
	}
	if len(result.Errors) > 0 {
		return fmt.Sprintf("invalid input: %s: %s", result.Errors[0].Field, result.Errors[0].Message)
	}
	return "invalid input"
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
