package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"product-guide-be/internal/constant"
	"product-guide-be/internal/dto"
	"product-guide-be/internal/entity"
	"product-guide-be/pkg/llm"
	"product-guide-be/pkg/store"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSessionStore struct {
	sessions map[string]*store.Session
	saves    int
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: map[string]*store.Session{}}
}

func (f *fakeSessionStore) Get(sessionID string) (*store.Session, bool) {
	s, ok := f.sessions[sessionID]
	return s, ok
}

func (f *fakeSessionStore) Save(session *store.Session) {
	f.saves++
	f.sessions[session.ID] = session
}

func (f *fakeSessionStore) Delete(sessionID string) {
	delete(f.sessions, sessionID)
}

type fakeRetrieval struct {
	result    *RetrievalResult
	lastQuery string
	calls     int
}

func (f *fakeRetrieval) Search(ctx context.Context, query string, topK int) *RetrievalResult {
	f.calls++
	f.lastQuery = query
	return f.result
}

type fakeLLM struct {
	reply string
	err   error
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return f.reply, f.err
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return f.reply, f.err
}

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

func testProduct() *entity.Product {
	return &entity.Product{
		Title:    "Sea Salt Spray",
		URL:      "https://example.com/products/sea-salt-spray",
		HowToUse: "Spray onto damp hair and scrunch.",
	}
}

func newChatFixture(result *RetrievalResult, llmReply string, llmErr error) (IChatService, *fakeSessionStore, *fakeRetrieval) {
	sessions := newFakeSessionStore()
	retriever := &fakeRetrieval{result: result}
	svc := NewChatService(sessions, retriever, &fakeLLM{reply: llmReply, err: llmErr}, noopLogger{}, 5)
	return svc, sessions, retriever
}

func foundResult() *RetrievalResult {
	return &RetrievalResult{
		Status:  RetrievalFound,
		Matches: []*ProductMatch{{Product: testProduct(), Similarity: 0.91}},
	}
}

func TestSendChatRejectsEmptyMessage(t *testing.T) {
	svc, sessions, _ := newChatFixture(foundResult(), "nice spray", nil)

	for _, message := range []string{"", "   ", "\n\t"} {
		_, err := svc.SendChat(context.Background(), &dto.ChatRequest{SessionId: "s1", Message: message})
		require.Error(t, err)

		var fiberErr *fiber.Error
		require.ErrorAs(t, err, &fiberErr)
		assert.Equal(t, fiber.StatusBadRequest, fiberErr.Code)
	}

	// Nothing was stored for the rejected turns.
	assert.Equal(t, 0, sessions.saves)
}

func TestSendChatAsksForHairTypeFirst(t *testing.T) {
	svc, sessions, _ := newChatFixture(foundResult(), "", nil)

	res, err := svc.SendChat(context.Background(), &dto.ChatRequest{SessionId: "s1", Message: "hi there"})
	require.NoError(t, err)

	assert.Equal(t, constant.AskHairTypePrompt, res.Reply)
	assert.Empty(t, res.HairType)
	assert.Empty(t, res.Concern)

	sess, found := sessions.Get("s1")
	require.True(t, found)
	require.Len(t, sess.History, 2)
	assert.Equal(t, constant.ChatRoleUser, sess.History[0].Role)
	assert.Equal(t, constant.ChatRoleAssistant, sess.History[1].Role)
}

func TestSendChatAsksForConcernAfterHairType(t *testing.T) {
	svc, _, retriever := newChatFixture(foundResult(), "", nil)

	res, err := svc.SendChat(context.Background(), &dto.ChatRequest{SessionId: "s1", Message: "I have curly hair"})
	require.NoError(t, err)

	assert.Equal(t, constant.AskConcernPrompt, res.Reply)
	assert.Equal(t, "curly", res.HairType)
	assert.Empty(t, res.Concern)
	assert.Zero(t, retriever.calls, "no retrieval before both slots are bound")
}

func TestSendChatRecommendsWhenBothSlotsInOneMessage(t *testing.T) {
	svc, _, retriever := newChatFixture(foundResult(), "This spray tames frizz beautifully.", nil)

	res, err := svc.SendChat(context.Background(), &dto.ChatRequest{SessionId: "s1", Message: "curly hair, frizz is my issue"})
	require.NoError(t, err)

	assert.Equal(t, "curly", res.HairType)
	assert.Equal(t, "frizz", res.Concern)
	assert.Contains(t, retriever.lastQuery, "product for curly hair with frizz concern")
	assert.Contains(t, res.Reply, "This spray tames frizz beautifully.")
	assert.Contains(t, res.Reply, `<a href="https://example.com/products/sea-salt-spray"`)
	assert.Contains(t, res.Reply, `rel="noopener noreferrer"`)
}

func TestSendChatFirstMatchWins(t *testing.T) {
	svc, _, _ := newChatFixture(foundResult(), "ok", nil)
	ctx := context.Background()

	_, err := svc.SendChat(ctx, &dto.ChatRequest{SessionId: "s1", Message: "curly hair here"})
	require.NoError(t, err)

	res, err := svc.SendChat(ctx, &dto.ChatRequest{SessionId: "s1", Message: "actually wavy, and frizz"})
	require.NoError(t, err)

	assert.Equal(t, "curly", res.HairType, "bound slot must not be overwritten")
	assert.Equal(t, "frizz", res.Concern)
}

func TestSendChatResetReturnsIntroVerbatim(t *testing.T) {
	svc, sessions, _ := newChatFixture(foundResult(), "ok", nil)
	ctx := context.Background()

	_, err := svc.SendChat(ctx, &dto.ChatRequest{SessionId: "s1", Message: "curly hair"})
	require.NoError(t, err)

	for _, phrase := range []string{"reset", "Restart", "  START OVER  "} {
		res, err := svc.SendChat(ctx, &dto.ChatRequest{SessionId: "s1", Message: phrase})
		require.NoError(t, err)
		assert.Equal(t, constant.IntroPrompt, res.Reply)
		assert.Empty(t, res.HairType)
		assert.Empty(t, res.Concern)
	}

	sess, found := sessions.Get("s1")
	require.True(t, found)
	assert.Empty(t, sess.Slots.HairType, "reset must clear slots")
}

func TestSendChatEmptyRetrievalMentionsBothSlots(t *testing.T) {
	svc, _, _ := newChatFixture(&RetrievalResult{Status: RetrievalEmpty}, "ok", nil)

	res, err := svc.SendChat(context.Background(), &dto.ChatRequest{SessionId: "s1", Message: "coily hair, hold"})
	require.NoError(t, err)

	assert.Contains(t, res.Reply, "coily")
	assert.Contains(t, res.Reply, "hold")
	assert.NotContains(t, res.Reply, "<a ", "no product link without a match")
}

func TestSendChatUnavailableRetrievalDegrades(t *testing.T) {
	svc, sessions, _ := newChatFixture(&RetrievalResult{Status: RetrievalUnavailable}, "ok", nil)

	res, err := svc.SendChat(context.Background(), &dto.ChatRequest{SessionId: "s1", Message: "fine hair, volume please"})
	require.NoError(t, err, "retrieval failure must not fail the turn")

	assert.Contains(t, res.Reply, "fine")
	assert.Contains(t, res.Reply, "volume")
	assert.Contains(t, res.Reply, `say "reset" to start over`)
	assert.NotContains(t, res.Reply, "<a ")

	// Slots were committed even though the search backend was down.
	sess, found := sessions.Get("s1")
	require.True(t, found)
	assert.Equal(t, "fine", sess.Slots.HairType)
	assert.Equal(t, "volume", sess.Slots.Concern)
}

func TestSendChatGenerationFailureFallsBack(t *testing.T) {
	svc, _, _ := newChatFixture(foundResult(), "", errors.New("model offline"))

	res, err := svc.SendChat(context.Background(), &dto.ChatRequest{SessionId: "s1", Message: "curly hair, frizz"})
	require.NoError(t, err)

	assert.Contains(t, res.Reply, "Sea Salt Spray", "fallback sentence names the product")
	assert.Contains(t, res.Reply, `<a href="https://example.com/products/sea-salt-spray"`, "card still rendered")
}

func TestSendChatFallbackEscapesProductTitle(t *testing.T) {
	result := foundResult()
	result.Matches[0].Product.Title = `<img src=x onerror=alert(1)>Spray`
	svc, _, _ := newChatFixture(result, "", errors.New("model offline"))

	res, err := svc.SendChat(context.Background(), &dto.ChatRequest{SessionId: "s1", Message: "curly hair, frizz"})
	require.NoError(t, err)

	// Scraped titles are untrusted; nothing from them may survive as
	// live markup in the prose segment.
	assert.NotContains(t, res.Reply, "<img")
	assert.NotContains(t, res.Reply, "onerror")
	assert.Contains(t, res.Reply, "Spray is the product I'd reach for.")
	assert.Contains(t, res.Reply, `<a href="https://example.com/products/sea-salt-spray"`)
}

func TestSendChatNeutralizesMarkupInGeneratedProse(t *testing.T) {
	svc, _, _ := newChatFixture(foundResult(), `Great pick! <script>alert(1)</script><b>Use daily.</b>`, nil)

	res, err := svc.SendChat(context.Background(), &dto.ChatRequest{SessionId: "s1", Message: "curly hair, frizz"})
	require.NoError(t, err)

	assert.NotContains(t, res.Reply, "<script")
	assert.NotContains(t, res.Reply, "<b>")
	assert.Contains(t, res.Reply, "Great pick!")
	assert.Contains(t, res.Reply, "Use daily.")
}

func TestSendChatGeneratesSessionIdWhenMissing(t *testing.T) {
	svc, sessions, _ := newChatFixture(foundResult(), "ok", nil)

	res, err := svc.SendChat(context.Background(), &dto.ChatRequest{Message: "hello"})
	require.NoError(t, err)

	require.NotEmpty(t, res.SessionId)
	_, found := sessions.Get(res.SessionId)
	assert.True(t, found)
}

func TestIntroCreatesSession(t *testing.T) {
	svc, sessions, _ := newChatFixture(foundResult(), "ok", nil)

	res := svc.Intro(context.Background())
	assert.Equal(t, constant.IntroPrompt, res.Reply)
	require.NotEmpty(t, res.SessionId)

	sess, found := sessions.Get(res.SessionId)
	require.True(t, found)
	require.Len(t, sess.History, 1)
	assert.True(t, strings.HasPrefix(sess.History[0].Text, "Hi!"))
}
