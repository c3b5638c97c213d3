package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"product-guide-be/internal/constant"
	"product-guide-be/internal/dto"
	"product-guide-be/internal/entity"
	"product-guide-be/internal/pkg/logger"
	"product-guide-be/pkg/dialogue"
	"product-guide-be/pkg/llm"
	"product-guide-be/pkg/markup"
	"product-guide-be/pkg/store"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IChatService interface {
	Intro(ctx context.Context) *dto.ChatResponse
	SendChat(ctx context.Context, request *dto.ChatRequest) (*dto.ChatResponse, error)
}

type chatService struct {
	sessionRepo      store.SessionStore
	retrievalService IRetrievalService
	llmProvider      llm.LLMProvider
	logger           logger.ILogger
	topK             int

	// One mutex per session id. Two concurrent turns on the same
	// session must serialize; turns on different sessions must not.
	sessionLocks sync.Map
}

func NewChatService(
	sessionRepo store.SessionStore,
	retrievalService IRetrievalService,
	llmProvider llm.LLMProvider,
	logger logger.ILogger,
	topK int,
) IChatService {
	return &chatService{
		sessionRepo:      sessionRepo,
		retrievalService: retrievalService,
		llmProvider:      llmProvider,
		logger:           logger,
		topK:             topK,
	}
}

func (cs *chatService) lockSession(sessionId string) func() {
	v, _ := cs.sessionLocks.LoadOrStore(sessionId, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// Intro hands the widget a fresh session and the opening greeting.
func (cs *chatService) Intro(ctx context.Context) *dto.ChatResponse {
	session := &store.Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
	}
	session.Append(constant.ChatRoleAssistant, constant.IntroPrompt)
	cs.sessionRepo.Save(session)

	return &dto.ChatResponse{
		SessionId: session.ID,
		Reply:     constant.IntroPrompt,
	}
}

// SendChat runs one dialogue turn: reset check, slot extraction, then
// either a clarifying question or a grounded recommendation.
func (cs *chatService) SendChat(ctx context.Context, request *dto.ChatRequest) (*dto.ChatResponse, error) {
	message := strings.TrimSpace(request.Message)
	if message == "" {
		// Rejected before any session state is touched.
		return nil, fiber.NewError(fiber.StatusBadRequest, "message must not be empty")
	}

	sessionId := request.SessionId
	if sessionId == "" {
		sessionId = uuid.NewString()
	}

	unlock := cs.lockSession(sessionId)
	defer unlock()

	// Reset phrases short-circuit the turn: no extraction, no history
	// carry-over, the greeting comes back verbatim.
	if dialogue.IsReset(message) {
		cs.sessionRepo.Delete(sessionId)
		session := &store.Session{
			ID:        sessionId,
			CreatedAt: time.Now(),
		}
		session.Append(constant.ChatRoleAssistant, constant.IntroPrompt)
		cs.sessionRepo.Save(session)

		return &dto.ChatResponse{
			SessionId: sessionId,
			Reply:     constant.IntroPrompt,
		}, nil
	}

	session, found := cs.sessionRepo.Get(sessionId)
	if !found {
		session = &store.Session{
			ID:        sessionId,
			CreatedAt: time.Now(),
		}
	}

	session.Append(constant.ChatRoleUser, message)

	// Bind whatever the message offers. A single message may fill both
	// slots; already bound slots are never overwritten.
	if session.Slots.HairType == "" {
		session.Slots.BindHairType(dialogue.Extract(message, dialogue.HairTypes))
	}
	if session.Slots.Concern == "" {
		session.Slots.BindConcern(dialogue.Extract(message, dialogue.Concerns))
	}

	// Slots are committed before retrieval so a failed search never
	// costs the user what they already told us.
	cs.sessionRepo.Save(session)

	var reply string
	switch dialogue.DeriveState(session.Slots) {
	case dialogue.StateAwaitingHairType:
		reply = constant.AskHairTypePrompt
	case dialogue.StateAwaitingConcern:
		reply = constant.AskConcernPrompt
	case dialogue.StateReadyToRecommend:
		reply = cs.recommend(ctx, session, message)
	}

	session.Append(constant.ChatRoleAssistant, reply)
	cs.sessionRepo.Save(session)

	return &dto.ChatResponse{
		SessionId: sessionId,
		Reply:     reply,
		HairType:  session.Slots.HairType,
		Concern:   session.Slots.Concern,
	}, nil
}

// recommend performs retrieval and composes the reply. Retrieval and
// generation failures downgrade the reply; they never fail the turn.
func (cs *chatService) recommend(ctx context.Context, session *store.Session, message string) string {
	slots := session.Slots
	query := dialogue.BuildQuery(slots, message)

	result := cs.retrievalService.Search(ctx, query, cs.topK)
	switch result.Status {
	case RetrievalFound:
		top := result.Matches[0].Product
		card := markup.Render(cardFromProduct(top))
		prose := cs.generateProse(ctx, session, top)
		return prose + "<br><br>" + card

	case RetrievalEmpty:
		return fmt.Sprintf(
			"I couldn't find a product in the catalog for %s hair with a %s concern yet. Try describing your concern differently, or say \"reset\" to start over.",
			slots.HairType, slots.Concern,
		)

	case RetrievalUnavailable:
		return fmt.Sprintf(
			"I'm having trouble searching the catalog right now, so I can't pick a product for your %s hair and %s concern. Please try again in a moment, or say \"reset\" to start over.",
			slots.HairType, slots.Concern,
		)
	}

	// Unreachable; every status is handled above.
	return constant.AskHairTypePrompt
}

// generateProse asks the model for 1-3 grounded sentences about the
// chosen product. A generation failure falls back to a fixed template
// so the recommendation still goes out.
func (cs *chatService) generateProse(ctx context.Context, session *store.Session, product *entity.Product) string {
	// The title comes from scraped pages and the prose is concatenated
	// into the reply markup, so both the fallback and the model output
	// are neutralized before they leave this function.
	fallback := fmt.Sprintf("For %s hair with a %s concern, %s is the product I'd reach for.",
		session.Slots.HairType, session.Slots.Concern, markup.Clean(product.Title))

	history := []llm.Message{
		{Role: constant.ChatRoleSystem, Content: constant.GenerationSystemPrompt},
		{Role: constant.ChatRoleUser, Content: buildGenerationPrompt(session.Slots, product)},
	}

	reply, err := cs.llmProvider.Chat(ctx, history, llm.WithTemperature(0.4), llm.WithMaxTokens(200))
	if err != nil {
		cs.logger.Warn("ChatService", "Generation failed, using fallback sentence", map[string]interface{}{"session_id": session.ID, "error": err.Error()})
		return fallback
	}
	reply = markup.Clean(reply)
	if reply == "" {
		return fallback
	}
	return reply
}

func buildGenerationPrompt(slots store.Slots, product *entity.Product) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Hair type: %s\nConcern: %s\n\nProduct:\nTitle: %s\nDescription: %s\n",
		slots.HairType, slots.Concern, product.Title, product.Description)
	if len(product.Bullets) > 0 {
		fmt.Fprintf(&sb, "Highlights: %s\n", strings.Join(product.Bullets, "; "))
	}
	if product.HowToUse != "" {
		fmt.Fprintf(&sb, "How to use: %s\n", product.HowToUse)
	}
	return sb.String()
}

func cardFromProduct(product *entity.Product) markup.Card {
	return markup.Card{
		Title:       product.Title,
		URL:         product.URL,
		HowToUse:    product.HowToUse,
		Bullets:     product.Bullets,
		Ingredients: product.Ingredients,
	}
}
