package wellbeing

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"wellbeing-backend/internal/audit"
	"wellbeing-backend/internal/llm"
	"wellbeing-backend/internal/shared/metrics"
	"wellbeing-backend/internal/shared/telemetry"
)

// Service runs the strategy cascade for one submission at a time.
type Service struct {
	Clients       map[Strategy]llm.Client
	Config        ProviderConfig
	PromptVersion string
	Audit         audit.Store
	Now           func() time.Time
}

// ValidateInput rejects empty or oversized submissions. Callers check this
// before Analyze; Analyze itself accepts any text.
func ValidateInput(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyInput
	}
	if utf8.RuneCountInString(text) > MaxInputChars {
		return fmt.Errorf("%w: max %d characters", ErrInputTooLong, MaxInputChars)
	}
	return nil
}

// Strategy reports the strategy new submissions will try first.
func (s *Service) Strategy() Strategy {
	return SelectStrategy(s.Config)
}

// Analyze returns a canonical record for text. It never fails.
func (s *Service) Analyze(ctx context.Context, text string) AnalysisRecord {
	return s.Run(ctx, text).Record
}

// Run tries each planned strategy in order until one yields a record.
// The local classifier is always last, so Run always produces a result.
func (s *Service) Run(ctx context.Context, text string) Outcome {
	start := s.now()
	out := Outcome{ID: uuid.NewString(), CreatedAt: start.UTC()}

	for _, strategy := range Plan(s.Config) {
		if !strategy.IsRemote() {
			out.Strategy = StrategyLocal
			out.Record = Classify(text)
			s.record(ctx, audit.ProviderCall{
				AnalysisID: out.ID,
				Strategy:   string(StrategyLocal),
				Outcome:    audit.OutcomeLocal,
				Reason:     out.FallbackReason,
			})
			break
		}

		record, err := s.runRemote(ctx, out.ID, strategy, text)
		if err == nil {
			out.Strategy = strategy
			out.Record = record
			break
		}
		out.Fallback = true
		out.FallbackReason = llm.ReasonOf(err)
		metrics.IncFallback(out.FallbackReason)
		telemetry.Warn("llm.fallback", map[string]any{
			"request_id":  telemetry.RequestID(ctx),
			"analysis_id": out.ID,
			"strategy":    string(strategy),
			"reason":      out.FallbackReason,
			"status":      llm.StatusOf(err),
			"err":         err.Error(),
		})
	}

	out.DurationMs = float64(s.now().Sub(start).Microseconds()) / 1000.0
	metrics.IncAnalysis(string(out.Strategy))
	telemetry.Info("analysis.complete", map[string]any{
		"request_id":  telemetry.RequestID(ctx),
		"analysis_id": out.ID,
		"strategy":    string(out.Strategy),
		"fallback":    out.Fallback,
		"duration_ms": out.DurationMs,
	})
	return out
}

func (s *Service) runRemote(ctx context.Context, analysisID string, strategy Strategy, text string) (AnalysisRecord, error) {
	client, ok := s.Clients[strategy]
	if !ok || client == nil {
		err := &llm.ProviderError{Provider: string(strategy), Reason: llm.ReasonNotConfigured, Err: llm.ErrNotConfigured}
		s.record(ctx, audit.ProviderCall{
			AnalysisID: analysisID,
			Strategy:   string(strategy),
			Outcome:    audit.OutcomeFallback,
			Reason:     err.Reason,
		})
		return AnalysisRecord{}, err
	}

	messages := llm.BuildMessages(s.PromptVersion, text)
	call := audit.ProviderCall{
		AnalysisID: analysisID,
		Strategy:   string(strategy),
		PromptHash: llm.PromptHash(messages),
	}

	started := s.now()
	record, err := s.exchange(ctx, client, strategy, messages)
	call.DurationMs = float64(s.now().Sub(started).Microseconds()) / 1000.0
	metrics.ObserveProviderDurationMs(call.DurationMs)

	if err != nil {
		call.Outcome = audit.OutcomeFallback
		call.Reason = llm.ReasonOf(err)
		call.StatusCode = llm.StatusOf(err)
	} else {
		call.Outcome = audit.OutcomeSuccess
	}
	s.record(ctx, call)
	return record, err
}

func (s *Service) exchange(ctx context.Context, client llm.Client, strategy Strategy, messages []llm.Message) (AnalysisRecord, error) {
	completion, err := client.Complete(ctx, messages)
	if err != nil {
		return AnalysisRecord{}, err
	}
	candidate, err := llm.DecodeCandidate(completion.Content)
	if err != nil {
		return AnalysisRecord{}, &llm.ProviderError{Provider: string(strategy), Reason: llm.ReasonParse, Err: err}
	}
	return Normalize(Candidate(candidate)), nil
}

func (s *Service) record(ctx context.Context, call audit.ProviderCall) {
	if s.Audit == nil {
		return
	}
	call.ID = uuid.NewString()
	call.RequestID = telemetry.RequestID(ctx)
	call.CreatedAt = s.now().UTC()
	// Record even when the request context is already cancelled.
	if err := s.Audit.Record(context.WithoutCancel(ctx), call); err != nil {
		telemetry.Error("audit.record_failed", map[string]any{
			"analysis_id": call.AnalysisID,
			"strategy":    call.Strategy,
			"err":         err.Error(),
		})
	}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
