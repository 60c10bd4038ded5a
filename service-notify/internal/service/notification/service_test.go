package notification

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"flows-notify/pkg/config"
	"flows-notify/pkg/email"
	"flows-notify/pkg/errorreport"
	"flows-notify/pkg/logger"
	"flows-notify/pkg/model"
	"flows-notify/pkg/redis"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.InitLogger(&config.Config{Log: config.LogConfig{Level: "error", Format: "json"}})
	os.Exit(m.Run())
}

type fakeStore struct {
	invitations map[uuid.UUID]*model.Invitation
	pending     []*model.Invitation
	sent        map[uuid.UUID]string
	failed      map[uuid.UUID]string
	listErr     error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		invitations: map[uuid.UUID]*model.Invitation{},
		sent:        map[uuid.UUID]string{},
		failed:      map[uuid.UUID]string{},
	}
}

func (s *fakeStore) GetByID(_ context.Context, id uuid.UUID) (*model.Invitation, error) {
	inv, ok := s.invitations[id]
	if !ok {
		return nil, errors.New("invitation not found")
	}
	return inv, nil
}

func (s *fakeStore) ListPending(_ context.Context, _ int) ([]*model.Invitation, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.pending, nil
}

func (s *fakeStore) MarkSent(_ context.Context, id uuid.UUID, messageID string) error {
	s.sent[id] = messageID
	return nil
}

func (s *fakeStore) MarkFailed(_ context.Context, id uuid.UUID, reason string) error {
	s.failed[id] = reason
	return nil
}

type fakeProvider struct {
	messages []*email.Message
	err      error
}

func (p *fakeProvider) SendEmail(_ context.Context, msg *email.Message) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	p.messages = append(p.messages, msg)
	return "msg-" + uuid.NewString(), nil
}

func (p *fakeProvider) ValidateProvider(_ context.Context) error {
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Email: config.EmailConfig{
			FromEmail: "noreply@thepia.com",
			FromName:  "Thepia Flows",
			Templates: config.EmailTemplateConfig{
				DemoBaseURL: "https://flows.thepia.net",
				AppName:     "Thepia Flows",
			},
		},
		Notify: config.NotifyConfig{
			PollInterval: time.Second,
			BatchSize:    10,
			LockTTL:      time.Minute,
		},
	}
}

func buildToken(t *testing.T, claims map[string]interface{}) string {
	t.Helper()

	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	payload, err := json.Marshal(claims)
	require.NoError(t, err)

	return header + "." + base64.RawURLEncoding.EncodeToString(payload) + ".signature"
}

func newService(store *fakeStore, provider *fakeProvider, locker Locker) *Service {
	reporter := errorreport.NewReporter(config.ErrorReportConfig{Enabled: false})
	return NewService(store, provider, reporter, locker, testConfig())
}

func sampleInvitation(t *testing.T) *model.Invitation {
	t.Helper()

	return &model.Invitation{
		ID:                      uuid.New(),
		JWTToken:                buildToken(t, map[string]interface{}{"email": "alice@example.com", "name": "Alice"}),
		MessageTemplate:         email.TemplateInvitationApproved,
		Status:                  model.StatusPending,
		MaxNotificationAttempts: 3,
	}
}

func TestSendDeliversRenderedNotification(t *testing.T) {
	store := newFakeStore()
	provider := &fakeProvider{}
	svc := newService(store, provider, nil)

	inv := sampleInvitation(t)
	result := svc.Send(context.Background(), inv, "")

	require.True(t, result.Success)
	assert.Equal(t, inv.ID, result.NotificationID)
	assert.Equal(t, "alice@example.com", result.Email)
	assert.Equal(t, email.TemplateInvitationApproved, result.Template)
	assert.NotEmpty(t, result.MessageID)
	assert.Empty(t, result.Error)

	require.Len(t, provider.messages, 1)
	msg := provider.messages[0]
	assert.Equal(t, "alice@example.com", msg.To)
	assert.Equal(t, "Your Thepia Flows Demo Access is Ready!", msg.Subject)
	assert.Contains(t, msg.HTML, "Alice")
	assert.Equal(t, inv.ID.String(), msg.Metadata["notification_id"])
	assert.Equal(t, "1", msg.Metadata["attempt"])
}

func TestSendFallsBackToApprovedTemplate(t *testing.T) {
	provider := &fakeProvider{}
	svc := newService(newFakeStore(), provider, nil)

	inv := sampleInvitation(t)
	inv.MessageTemplate = ""

	result := svc.Send(context.Background(), inv, "")

	require.True(t, result.Success)
	assert.Equal(t, email.TemplateInvitationApproved, result.Template)
}

func TestSendWithoutTokenFails(t *testing.T) {
	svc := newService(newFakeStore(), &fakeProvider{}, nil)

	inv := sampleInvitation(t)
	inv.JWTToken = ""

	result := svc.Send(context.Background(), inv, "")

	assert.False(t, result.Success)
	assert.Equal(t, inv.ID, result.NotificationID)
	assert.Contains(t, result.Error, "no token found")
}

func TestSendWithMalformedTokenFails(t *testing.T) {
	svc := newService(newFakeStore(), &fakeProvider{}, nil)

	inv := sampleInvitation(t)
	inv.JWTToken = "not-a-token"

	result := svc.Send(context.Background(), inv, "")

	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Error)
}

func TestSendCustomMessageTakesPrecedence(t *testing.T) {
	provider := &fakeProvider{}
	svc := newService(newFakeStore(), provider, nil)

	inv := sampleInvitation(t)
	inv.CustomMessage = "Hello {{name}}, your demo is ready."

	result := svc.Send(context.Background(), inv, "")

	require.True(t, result.Success)
	require.Len(t, provider.messages, 1)
	msg := provider.messages[0]
	assert.Equal(t, "Important Update from Thepia Flows", msg.Subject)
	assert.Contains(t, msg.HTML, "Hello Alice, your demo is ready.")
}

func TestSendDeliveryErrorCarriesDetails(t *testing.T) {
	provider := &fakeProvider{err: &email.DeliveryError{
		Kind:       email.DeliveryRejected,
		StatusCode: 400,
		Message:    "Email address is not verified",
	}}
	svc := newService(newFakeStore(), provider, nil)

	result := svc.Send(context.Background(), sampleInvitation(t), "")

	require.False(t, result.Success)
	details, ok := result.Details.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, string(email.DeliveryRejected), details["kind"])
	assert.Equal(t, 400, details["status_code"])
}

func TestSendByIDRecordsOutcome(t *testing.T) {
	store := newFakeStore()
	provider := &fakeProvider{}
	svc := newService(store, provider, nil)

	inv := sampleInvitation(t)
	store.invitations[inv.ID] = inv

	result, err := svc.SendByID(context.Background(), inv.ID, "")
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Equal(t, result.MessageID, store.sent[inv.ID])

	failing := sampleInvitation(t)
	failing.JWTToken = ""
	store.invitations[failing.ID] = failing

	result, err = svc.SendByID(context.Background(), failing.ID, "")
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, store.failed[failing.ID], "no token found")
}

func TestSendByIDUnknownInvitation(t *testing.T) {
	svc := newService(newFakeStore(), &fakeProvider{}, nil)

	_, err := svc.SendByID(context.Background(), uuid.New(), "")
	assert.Error(t, err)
}

func TestProcessPendingLocksEachRecord(t *testing.T) {
	mr := miniredis.RunT(t)
	locker := redis.NewClientFromAddr(mr.Addr())
	defer locker.Close()

	store := newFakeStore()
	provider := &fakeProvider{}
	svc := newService(store, provider, locker)

	first := sampleInvitation(t)
	second := sampleInvitation(t)
	store.pending = []*model.Invitation{first, second}

	// Another worker already holds the lock for the second record.
	require.NoError(t, mr.Set("notify:lock:"+second.ID.String(), "1"))

	results, err := svc.ProcessPending(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, first.ID, results[0].NotificationID)
	assert.True(t, results[0].Success)

	// The processed record's lock is released afterwards.
	assert.False(t, mr.Exists("notify:lock:"+first.ID.String()))
	assert.True(t, mr.Exists("notify:lock:"+second.ID.String()))
}

func TestProcessPendingPropagatesListError(t *testing.T) {
	mr := miniredis.RunT(t)
	locker := redis.NewClientFromAddr(mr.Addr())
	defer locker.Close()

	store := newFakeStore()
	store.listErr = errors.New("connection refused")
	svc := newService(store, &fakeProvider{}, locker)

	_, err := svc.ProcessPending(context.Background())
	assert.Error(t, err)
}

func TestSendTest(t *testing.T) {
	provider := &fakeProvider{}
	svc := newService(newFakeStore(), provider, nil)

	messageID, err := svc.SendTest(context.Background(), "admin@thepia.com")
	require.NoError(t, err)
	assert.NotEmpty(t, messageID)

	require.Len(t, provider.messages, 1)
	assert.Equal(t, "Test Email from Thepia Flows Admin", provider.messages[0].Subject)

	_, err = svc.SendTest(context.Background(), "not-an-email")
	assert.Error(t, err)
}
