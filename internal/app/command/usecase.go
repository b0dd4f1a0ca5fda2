package command

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"assistant/internal/app/ports"
	"assistant/internal/domain/intent"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	stateModerating           = "MODERATING"
	stateRefused              = "REFUSED"
	stateClassifying          = "CLASSIFYING"
	stateClassificationFailed = "CLASSIFICATION_FAILED"
	stateDispatching          = "DISPATCHING"
	stateAggregated           = "AGGREGATED"
)

// UseCase runs one raw command through moderation, classification and
// per-item dispatch. Only moderation and classification can fail the whole
// request; everything after is item-local.
type UseCase struct {
	Gate       Gate
	Classifier Classifier
	Resolver   Resolver
	Router     Router
	Dispatcher Dispatcher
	Metrics    ports.PipelineMetrics
	Logger     *zap.Logger
	NewID      func() string
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	raw := strings.TrimSpace(req.Input)
	if raw == "" {
		return Response{}, ErrInvalidRequest
	}
	resp := Response{RequestID: u.newID()}
	log := u.logger().With(zap.String("request_id", resp.RequestID))

	log.Debug("pipeline stage", zap.String("state", stateModerating))
	verdict, err := u.Gate.Check(ctx, raw)
	if err != nil {
		log.Error("moderation unavailable", zap.Error(err))
		resp.Outcome = ports.OutcomeFailed
		u.recordOutcome(resp.Outcome)
		return resp, err
	}
	if verdict.Flagged {
		log.Info("pipeline stage",
			zap.String("state", stateRefused),
			zap.Strings("categories", flaggedCategories(verdict)),
			zap.Error(ErrSafetyRefusal))
		resp.Text = RefusalText
		resp.Outcome = ports.OutcomeRefused
		u.recordOutcome(resp.Outcome)
		return resp, nil
	}

	log.Debug("pipeline stage", zap.String("state", stateClassifying))
	items, out, err := u.Classifier.Classify(ctx, raw)
	log.Debug("classifier output", zap.String("raw", out))
	if err != nil {
		var collab *CollaboratorError
		if errors.As(err, &collab) {
			log.Error("classifier unavailable", zap.Error(err))
			resp.Outcome = ports.OutcomeFailed
			u.recordOutcome(resp.Outcome)
			return resp, err
		}
		log.Debug("pipeline stage", zap.String("state", stateClassificationFailed), zap.Error(err))
		if errors.Is(err, ErrUnknownCategory) {
			resp.Text, resp.Outcome = UnclassifiedText, ports.OutcomeUnclassified
		} else {
			resp.Text, resp.Outcome = MisunderstoodText, ports.OutcomeMisunderstood
		}
		u.recordOutcome(resp.Outcome)
		return resp, nil
	}

	log.Debug("pipeline stage", zap.String("state", stateDispatching), zap.Int("items", len(items)))
	resp.Items = u.dispatcher().Dispatch(ctx, items, func(ctx context.Context, i int, item intent.Item) ItemOutcome {
		return u.processItem(ctx, log.With(zap.Int("item", i)), item)
	})
	for _, o := range resp.Items {
		if u.Metrics != nil {
			u.Metrics.RecordItem(o.Item.Category, o.Result.Status)
		}
	}
	resp.Text = Aggregate(resp.Items)
	resp.Outcome = ports.OutcomeAggregated
	u.recordOutcome(resp.Outcome)
	log.Debug("pipeline stage", zap.String("state", stateAggregated))
	return resp, nil
}

func (u UseCase) processItem(ctx context.Context, log *zap.Logger, item intent.Item) ItemOutcome {
	outcome := ItemOutcome{Item: item}
	rec, err := u.Resolver.Resolve(ctx, item)
	if err != nil {
		log.Warn("detail resolution failed", zap.String("category", string(item.Category)), zap.Error(err))
		outcome.Result = resolveFailure(item.Category, err)
		return outcome
	}
	log.Debug("detail resolved",
		zap.String("category", string(rec.Category)),
		zap.String("kind", string(rec.Kind)),
		zap.Strings("payload_keys", rec.Payload.Keys()))
	outcome.Record = &rec
	outcome.Result = u.Router.Route(ctx, rec)
	if outcome.Result.Status != intent.StatusOK {
		log.Warn("action not completed",
			zap.String("category", string(rec.Category)),
			zap.String("kind", string(rec.Kind)),
			zap.String("status", string(outcome.Result.Status)))
	}
	return outcome
}

func resolveFailure(c intent.Category, err error) intent.Result {
	switch {
	case errors.Is(err, ErrDetailParse):
		return intent.Result{
			Text:   fmt.Sprintf("Sorry, I couldn't understand the details of your %s request.", c),
			Status: intent.StatusParseError,
		}
	case errors.Is(err, context.DeadlineExceeded):
		return intent.Result{
			Text:   fmt.Sprintf("Your %s request took too long to interpret. Please try again.", c),
			Status: intent.StatusFailed,
		}
	case errors.Is(err, ErrUnknownCategory):
		return intent.Result{Text: UnclassifiedText, Status: intent.StatusUnsupported}
	default:
		return intent.Result{
			Text:   fmt.Sprintf("Your %s request could not be interpreted right now. Please try again later.", c),
			Status: intent.StatusFailed,
		}
	}
}

func flaggedCategories(v ports.ModerationVerdict) []string {
	var out []string
	for name, hit := range v.Categories {
		if hit {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

func (u UseCase) recordOutcome(outcome string) {
	if u.Metrics != nil {
		u.Metrics.RecordOutcome(outcome)
	}
}

func (u UseCase) dispatcher() Dispatcher {
	if u.Dispatcher == nil {
		return SequentialDispatcher{}
	}
	return u.Dispatcher
}

func (u UseCase) newID() string {
	if u.NewID != nil {
		return u.NewID()
	}
	return uuid.NewString()
}

func (u UseCase) logger() *zap.Logger {
	if u.Logger == nil {
		return zap.NewNop()
	}
	return u.Logger
}
