package services

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"emdash-brief/pkg/checkout"
	"emdash-brief/pkg/clients/kit"
	"emdash-brief/pkg/clients/notion"
	"emdash-brief/pkg/logger"
	"emdash-brief/pkg/metrics"
	"emdash-brief/pkg/models"
	"emdash-brief/pkg/telemetry"
	"emdash-brief/pkg/utils"
)

// Submission outcomes used as metric labels.
const (
	outcomeCreated  = "created"
	outcomeInvalid  = "invalid"
	outcomeFailed   = "failed"
	unknownTypeName = "unknown"
)

// SubmissionService defines the interface for handling form submissions
type SubmissionService interface {
	ProcessSubmission(ctx context.Context, req models.SubmissionRequest) (*models.SubmissionResult, error)
}

type submissionServiceImpl struct {
	notionClient notion.Client
	kitClient    kit.Client
	redirector   *checkout.Redirector
	logger       logger.Logger
}

// NewSubmissionService creates a new submission service. redirector may be nil.
func NewSubmissionService(
	notionClient notion.Client,
	kitClient kit.Client,
	redirector *checkout.Redirector,
	log logger.Logger,
) SubmissionService {
	return &submissionServiceImpl{
		notionClient: notionClient,
		kitClient:    kitClient,
		redirector:   redirector,
		logger:       log,
	}
}

// ProcessSubmission composes the request and sends it to the records system
// and the mailing list. Nothing is sent when composing fails. The record is
// the source of truth: its failure fails the submission, while a mailing-list
// failure only shows up as KitAdded=false.
func (s *submissionServiceImpl) ProcessSubmission(ctx context.Context, req models.SubmissionRequest) (*models.SubmissionResult, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "submission.process")
	defer span.End()

	entry, err := ParseEntry(req)
	if err != nil {
		metrics.SubmissionsTotal.WithLabelValues(unknownTypeName, outcomeInvalid).Inc()
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	entryType := string(entry.Type())
	span.SetAttributes(attribute.String("submission.entry_type", entryType))

	log := s.logger.WithFields(map[string]interface{}{
		"entryType": entryType,
		"emailHash": utils.HashEmail(EntryEmail(entry)),
	})

	props, err := Compose(entry)
	if err != nil {
		metrics.SubmissionsTotal.WithLabelValues(entryType, outcomeInvalid).Inc()
		span.SetStatus(codes.Error, err.Error())
		log.Warn("Rejected submission", map[string]interface{}{"reason": err.Error()})
		return nil, err
	}
	sub := Subscriber(entry)

	// From here the submission runs to completion even if the caller goes
	// away; each outbound call is still bounded by its client timeout.
	ctx = context.WithoutCancel(ctx)

	log.Info("Processing submission", map[string]interface{}{
		"properties": props.Names(),
		"tags":       sub.Tags,
	})

	// The two calls are independent; neither result changes the other call.
	var (
		wg       sync.WaitGroup
		pageID   string
		pageErr  error
		kitAdded bool
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		pageID, pageErr = s.notionClient.CreatePage(ctx, props)
	}()
	go func() {
		defer wg.Done()
		kitAdded = s.kitClient.Subscribe(ctx, sub)
	}()
	wg.Wait()

	if pageErr != nil {
		metrics.SubmissionsTotal.WithLabelValues(entryType, outcomeFailed).Inc()
		span.RecordError(pageErr)
		span.SetStatus(codes.Error, pageErr.Error())
		log.WithError(pageErr).Error("Failed to create record", map[string]interface{}{"kitAdded": kitAdded})
		return nil, fmt.Errorf("create record: %w", pageErr)
	}

	result := &models.SubmissionResult{
		Success:  true,
		ID:       pageID,
		KitAdded: kitAdded,
	}

	if _, ok := entry.(ProjectBrief); ok && s.redirector.Configured() {
		checkoutURL, err := s.redirector.URL(checkout.Params{Email: EntryEmail(entry), Reference: pageID})
		if err != nil {
			log.WithError(err).Warn("Could not build checkout URL", nil)
		} else {
			result.CheckoutURL = checkoutURL
		}
	}

	metrics.SubmissionsTotal.WithLabelValues(entryType, outcomeCreated).Inc()
	log.Info("Submission stored", map[string]interface{}{
		"recordId": pageID,
		"kitAdded": kitAdded,
	})
	return result, nil
}
