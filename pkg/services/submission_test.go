package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"emdash-brief/pkg/checkout"
	"emdash-brief/pkg/clients/kit"
	"emdash-brief/pkg/clients/notion"
	apperrors "emdash-brief/pkg/errors"
	"emdash-brief/pkg/logger"
	"emdash-brief/pkg/models"
)

type MockNotionClient struct {
	mock.Mock
}

func (m *MockNotionClient) CreatePage(ctx context.Context, props notion.Properties) (string, error) {
	args := m.Called(ctx, props)
	return args.String(0), args.Error(1)
}

type MockKitClient struct {
	mock.Mock
}

func (m *MockKitClient) Subscribe(ctx context.Context, sub kit.Subscriber) bool {
	args := m.Called(ctx, sub)
	return args.Bool(0)
}

func newTestService(t *testing.T, redirector *checkout.Redirector) (SubmissionService, *MockNotionClient, *MockKitClient) {
	notionClient := &MockNotionClient{}
	kitClient := &MockKitClient{}
	svc := NewSubmissionService(notionClient, kitClient, redirector, logger.NewTestLogger(t))
	return svc, notionClient, kitClient
}

func validBrief() models.SubmissionRequest {
	return projectRequest(models.ProjectData{
		WhatToCreate: "Website Design",
		WhoIsItFor:   "founders",
		BusinessName: "Acme",
		Email:        "jane@acme.test",
	})
}

func TestProcessSubmission_Success(t *testing.T) {
	svc, notionClient, kitClient := newTestService(t, nil)

	notionClient.On("CreatePage", mock.Anything, mock.MatchedBy(func(p notion.Properties) bool {
		title, ok := p.Get(PropName)
		return ok && title.Text == "Acme"
	})).Return("page-1", nil).Once()
	kitClient.On("Subscribe", mock.Anything, kit.Subscriber{
		Email:        "jane@acme.test",
		BusinessName: "Acme",
		Tags:         []string{"project-brief", "pending-payment", "website-design"},
	}).Return(true).Once()

	result, err := svc.ProcessSubmission(context.Background(), validBrief())
	require.NoError(t, err)

	assert.Equal(t, &models.SubmissionResult{Success: true, ID: "page-1", KitAdded: true}, result)
	notionClient.AssertExpectations(t)
	kitClient.AssertExpectations(t)
}

func TestProcessSubmission_MailingListFailureIsNotFatal(t *testing.T) {
	svc, notionClient, kitClient := newTestService(t, nil)

	notionClient.On("CreatePage", mock.Anything, mock.Anything).Return("page-2", nil).Once()
	kitClient.On("Subscribe", mock.Anything, mock.Anything).Return(false).Once()

	result, err := svc.ProcessSubmission(context.Background(), contactRequest(models.ContactData{
		Email:        "jane@acme.test",
		BusinessName: "Acme",
	}))
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, "page-2", result.ID)
	assert.False(t, result.KitAdded)
	assert.Empty(t, result.CheckoutURL)
}

func TestProcessSubmission_RecordFailure(t *testing.T) {
	svc, notionClient, kitClient := newTestService(t, nil)

	remote := &apperrors.RemoteError{System: "notion", Status: 400, Code: "validation_error", Message: "bad select"}
	notionClient.On("CreatePage", mock.Anything, mock.Anything).Return("", remote).Once()
	kitClient.On("Subscribe", mock.Anything, mock.Anything).Return(true).Once()

	result, err := svc.ProcessSubmission(context.Background(), validBrief())
	assert.Nil(t, result)

	got, ok := apperrors.AsRemote(err)
	require.True(t, ok)
	assert.Equal(t, "validation_error", got.Code)
	kitClient.AssertExpectations(t)
}

func TestProcessSubmission_ValidationStopsBeforeOutboundCalls(t *testing.T) {
	tests := []struct {
		name string
		req  models.SubmissionRequest
	}{
		{"unknown type", models.SubmissionRequest{Type: "Newsletter", ProjectData: &models.ProjectData{BusinessName: "Acme"}}},
		{"missing business name", projectRequest(models.ProjectData{WhatToCreate: "Logo", Email: "a@b.co"})},
		{"missing contact data", models.SubmissionRequest{Type: models.EntryTypeContactForm}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, notionClient, kitClient := newTestService(t, nil)

			result, err := svc.ProcessSubmission(context.Background(), tt.req)
			assert.Nil(t, result)
			_, ok := apperrors.AsValidation(err)
			assert.True(t, ok)

			notionClient.AssertNotCalled(t, "CreatePage", mock.Anything, mock.Anything)
			kitClient.AssertNotCalled(t, "Subscribe", mock.Anything, mock.Anything)
		})
	}
}

func TestProcessSubmission_CheckoutURLForProjectBrief(t *testing.T) {
	redirector := checkout.NewRedirector("https://buy.stripe.com/test_abc", "/success", "/")
	svc, notionClient, kitClient := newTestService(t, redirector)

	notionClient.On("CreatePage", mock.Anything, mock.Anything).Return("page-3", nil)
	kitClient.On("Subscribe", mock.Anything, mock.Anything).Return(true)

	result, err := svc.ProcessSubmission(context.Background(), validBrief())
	require.NoError(t, err)

	u, err := url.Parse(result.CheckoutURL)
	require.NoError(t, err)
	assert.Equal(t, "jane@acme.test", u.Query().Get("prefilled_email"))
	assert.Equal(t, "page-3", u.Query().Get("client_reference_id"))

	contact, err := svc.ProcessSubmission(context.Background(), contactRequest(models.ContactData{Email: "a@b.co", BusinessName: "Acme"}))
	require.NoError(t, err)
	assert.Empty(t, contact.CheckoutURL)
}

func TestProcessSubmission_CallerCancellationDoesNotAbortRecord(t *testing.T) {
	arrived := make(chan struct{})
	cancelled := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(arrived)
		<-cancelled
		time.Sleep(50 * time.Millisecond)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object":"page","id":"page-late"}`))
	}))
	defer server.Close()

	log := logger.NewTestLogger(t)
	notionClient := notion.NewClient("secret", "db-1",
		notion.WithBaseURL(server.URL),
		notion.WithTimeout(5*time.Second),
		notion.WithLogger(log),
	)
	kitClient := &MockKitClient{}
	kitClient.On("Subscribe", mock.Anything, mock.Anything).Return(true).Once()
	svc := NewSubmissionService(notionClient, kitClient, nil, log)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-arrived
		cancel()
		close(cancelled)
	}()

	result, err := svc.ProcessSubmission(ctx, validBrief())
	require.NoError(t, err)
	assert.Equal(t, "page-late", result.ID)
	assert.Error(t, ctx.Err())
	kitClient.AssertExpectations(t)
}
