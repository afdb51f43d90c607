package app

import (
	"context"
	"fmt"

	"github.com/example/courier/internal/adapters/automation"
	"github.com/example/courier/internal/ctxutil"
	"github.com/example/courier/internal/models"
	"github.com/example/courier/internal/ports/primary"
	"github.com/example/courier/internal/registry"
)

// RouterServiceImpl implements the DeliveryService interface: it resolves
// logical destinations into concrete recipients and fans out sequential
// deliveries, aggregating per-recipient outcomes.
type RouterServiceImpl struct {
	registry *registry.Registry
	engine   *DeliveryEngine
	// dryEngine routes dry runs through a recording simulator and a discard
	// inbox, leaving the desktop and the filesystem untouched.
	dryEngine *DeliveryEngine
}

// NewRouterService creates a router with injected dependencies.
func NewRouterService(reg *registry.Registry, engine *DeliveryEngine) *RouterServiceImpl {
	return &RouterServiceImpl{
		registry:  reg,
		engine:    engine,
		dryEngine: NewDeliveryEngine(reg, automation.NewRecordingSimulator(), discardInbox{}, nil),
	}
}

// SendMessage implements primary.DeliveryService.
func (s *RouterServiceImpl) SendMessage(ctx context.Context, req primary.SendMessageRequest) (*models.DeliveryReport, error) {
	if req.SenderID == "" {
		// CLI entry points stamp the acting identity on the context.
		req.SenderID = ctxutil.SenderFromContext(ctx)
	}
	msg, err := models.NewMessage(req.SenderID, req.Recipients, req.Body, req.Priority, req.Tags)
	if err != nil {
		return nil, fmt.Errorf("invalid message: %w", err)
	}
	mode := req.Mode
	if mode == "" {
		mode = models.SendModeNormal
	}

	engine := s.engine
	if req.DryRun {
		engine = s.dryEngine
	}

	if msg.IsBroadcast() {
		return s.broadcast(ctx, engine, msg, mode), nil
	}

	report := &models.DeliveryReport{MessageID: msg.ID}
	for _, recipientID := range dedupe(msg.Recipients) {
		if ctx.Err() != nil {
			break
		}
		report.Add(engine.Deliver(ctx, msg, recipientID, mode))
	}
	return report, nil
}

// Broadcast implements primary.DeliveryService.
func (s *RouterServiceImpl) Broadcast(ctx context.Context, req primary.SendMessageRequest) (*models.DeliveryReport, error) {
	req.Recipients = []string{models.BroadcastRecipient}
	return s.SendMessage(ctx, req)
}

// broadcast resolves the active set once and delivers sequentially. One bad
// recipient never blocks the rest; cancellation stops scheduling further
// recipients but the in-flight sequence finishes.
func (s *RouterServiceImpl) broadcast(ctx context.Context, engine *DeliveryEngine, msg *models.Message, mode models.SendMode) *models.DeliveryReport {
	snapshot := s.registry.ActiveSnapshot()

	report := &models.DeliveryReport{MessageID: msg.ID}
	for _, profile := range snapshot {
		if ctx.Err() != nil {
			break
		}
		if profile.ID == msg.SenderID {
			// An agent never broadcasts to itself.
			continue
		}
		report.Add(engine.DeliverResolved(ctx, msg, profile, mode))
	}
	return report
}

// dedupe preserves first-occurrence order; no recipient is attempted twice.
func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Ensure RouterServiceImpl implements the interface.
var _ primary.DeliveryService = (*RouterServiceImpl)(nil)
